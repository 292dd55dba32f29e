package avatar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func defaultGenerator() *Generator {
	return NewGenerator(Config{
		BaseURL:     "https://robohash.org/",
		ImageSuffix: ".png",
		Set:         "set2",
		Size:        "200x200",
		DefaultSeed: "default",
	})
}

func TestDerive_Format(t *testing.T) {
	g := defaultGenerator()

	got := g.Derive(str("John"), str("Doe"))
	require.Equal(t, "https://robohash.org/JohnDoe.png?set=set2&size=200x200", got)
}

func TestDerive_IsDeterministic(t *testing.T) {
	g := defaultGenerator()

	first := g.Derive(str("Jane"), str("Doe"))
	second := g.Derive(str("Jane"), str("Doe"))
	require.Equal(t, first, second)

	// A separate generator with the same config agrees as well
	require.Equal(t, first, defaultGenerator().Derive(str("Jane"), str("Doe")))
}

func TestSeed(t *testing.T) {
	g := defaultGenerator()

	tests := []struct {
		name      string
		firstName *string
		lastName  *string
		want      string
	}{
		{"both names", str("John"), str("Doe"), "JohnDoe"},
		{"first only", str("Cher"), nil, "Cher"},
		{"last only", nil, str("Doe"), "Doe"},
		{"both nil", nil, nil, "default"},
		{"both empty", str(""), str(""), "default"},
		{"blank", str("  "), nil, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Seed(tt.firstName, tt.lastName))
		})
	}
}

func TestDerive_EmptyNameUsesDefaultSeed(t *testing.T) {
	g := defaultGenerator()

	require.Equal(t, "https://robohash.org/default.png?set=set2&size=200x200", g.Derive(nil, nil))
}

func TestDerive_EscapesSeed(t *testing.T) {
	g := defaultGenerator()

	got := g.Derive(str("Mary Ann"), str("O/Neil"))
	require.True(t, strings.HasPrefix(got, "https://robohash.org/Mary%20AnnO%2FNeil.png"), got)
}

func TestDerive_OmitsEmptyQuery(t *testing.T) {
	g := NewGenerator(Config{BaseURL: "https://cdn.example.com/avatars/", ImageSuffix: ".svg"})

	require.Equal(t, "https://cdn.example.com/avatars/JohnDoe.svg", g.Derive(str("John"), str("Doe")))
	require.Equal(t, "https://cdn.example.com/avatars/default.svg", g.Derive(nil, nil))
}
