package main

import (
	"testing"
)

func TestResolveCommandMovie(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Heat"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve movie: %v", err)
	}
	requireContains(t, out, "movie")
	requireContains(t, out, "949")
	requireContains(t, out, "Heat")
}

func TestResolveCommandEpisodeBySeasonScan(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Bluff", "--season", "Prison Break"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve episode: %v", err)
	}
	requireContains(t, out, "2288")
	requireContains(t, out, "Season")
	requireContains(t, out, "Episode")
	requireContains(t, out, "6")
}

func TestResolveCommandEpisodeByAirDate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Folge 2", "--season", "Prison Break: Season 2", "--date", "2006-09-25"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve by air date: %v", err)
	}
	requireContains(t, out, "Episode")
	requireContains(t, out, "6")
}

func TestResolveCommandUnresolvedEpisode(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Bluff", "--season", "Prison Break: Season 1"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve unresolved episode: %v", err)
	}
	requireContains(t, out, "not matched")
}

func TestResolveCommandForcedMovieKind(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Heat", "--kind", "movie"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve --kind movie: %v", err)
	}
	requireContains(t, out, "949")
}

func TestResolveCommandForcedShowKind(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"resolve", "Prison Break", "--kind", "tv"}, env.configPath)
	if err != nil {
		t.Fatalf("resolve --kind tv: %v", err)
	}
	requireContains(t, out, "2288")
	requireContains(t, out, "Prison Break")
}

func TestResolveCommandUnknownKind(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"resolve", "Heat", "--kind", "both"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown kind error")
	}
	requireContains(t, err.Error(), "unknown --kind")
}

func TestResolveCommandNotFound(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"resolve", "Ghost Story"}, env.configPath)
	if err == nil {
		t.Fatal("expected not found error")
	}
	requireContains(t, err.Error(), "no movie or show")
}

func TestResolveCommandRequiresTitle(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"resolve"}, env.configPath)
	if err == nil {
		t.Fatal("expected argument error")
	}
	requireContains(t, err.Error(), "accepts 1 arg")
}
