package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	require.Len(t, p.Sections, 4)
	assert.Equal(t, "About Me", p.Sections[0].Name)
	assert.Equal(t, [2]float64{-35, -35}, p.Sections[0].Position)
	assert.Equal(t, uint32(0xff0000), p.Sections[0].Color)
	assert.NotEmpty(t, p.Sections[0].Curiosities)

	require.Len(t, p.Projects, 6)
	assert.Equal(t, 15.0, p.ProjectRadius)
	assert.Equal(t, "System_Log", p.Projects[5].Name)
	assert.Equal(t, uint32(0x607d8b), p.Projects[5].Color)
	assert.Len(t, p.Projects[0].Details, 3)

	assert.Equal(t, uint32(0xffaa00), p.Center.Color)
	assert.Len(t, p.Center.Lines, 5)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Len(t, p.Sections, 4)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	doc := `
sections:
  - name: Only
    position: [1, 2]
    color: 0x123456
    info: [a, b]
projects: []
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, uint32(0x123456), p.Sections[0].Color)
	assert.Empty(t, p.Projects)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"empty":           {"", "empty"},
		"unknown key":     {"sectons: []\n", "sectons"},
		"unnamed":         {"sections:\n  - color: 1\n", "no name"},
		"dup section":     {"sections:\n  - name: A\n  - name: A\n", `duplicate section name "A"`},
		"dup project":     {"projectRadius: 3\nprojects:\n  - name: X\n  - name: X\n", "duplicate project"},
		"missing radius":  {"projects:\n  - name: X\n", "projectRadius"},
		"reserved center": {"sections:\n  - name: center\n", `duplicate section name "center"`},
		"slash in name":   {"projectRadius: 3\nprojects:\n  - name: A/ring\n", "must not contain"},
		"shared name": {
			"sections:\n  - name: Blog\nprojectRadius: 3\nprojects:\n  - name: Blog\n",
			`duplicate project name "Blog"`,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
