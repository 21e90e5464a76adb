package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/plank/internal/codec"
	"github.com/hpungsan/plank/internal/config"
	"github.com/hpungsan/plank/internal/errors"
)

func runCLI(t *testing.T, cfg *config.Config, args ...string) error {
	t.Helper()
	return newCLIApp(cfg).Run(append([]string{"plank"}, args...))
}

func TestInitCreatesParseableBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.md")
	err := runCLI(t, config.DefaultConfig(), "init", path, "--title", "Demo", "--columns", "A, B ,")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := codec.Parse(string(data))
	require.NoError(t, err)
	require.Equal(t, "Demo", doc.Title)
	require.Len(t, doc.Columns, 2)
	require.Equal(t, "A", doc.Columns[0].Title)
	require.Equal(t, "B", doc.Columns[1].Title)

	// Refuses to clobber an existing file.
	require.Error(t, runCLI(t, config.DefaultConfig(), "init", path))
}

func TestInitDefaultColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.md")
	require.NoError(t, runCLI(t, config.DefaultConfig(), "init", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := codec.Parse(string(data))
	require.NoError(t, err)
	require.Len(t, doc.Columns, 3)
	require.Equal(t, "To do", doc.Columns[0].Title)
}

func TestFmtCanonicalizesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.md")
	messy := "---\r\nkanban: true\r\nboardTitle: Messy\r\n---\r\n## [a] Alpha\r\n- [ ] [c1] Card\r\n"
	require.NoError(t, os.WriteFile(path, []byte(messy), 0644))

	// Not canonical yet.
	require.Error(t, runCLI(t, config.DefaultConfig(), "fmt", "--check", path))

	require.NoError(t, runCLI(t, config.DefaultConfig(), "fmt", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := codec.Parse(string(data))
	require.NoError(t, err)
	require.Equal(t, codec.Serialize(doc), string(data), "formatted file should be a serialization fixed point")

	require.NoError(t, runCLI(t, config.DefaultConfig(), "fmt", "--check", path))
}

func TestFmtMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.md")
	require.Error(t, runCLI(t, config.DefaultConfig(), "fmt", path))
}

func TestCheckNonBoardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: notes\n---\nbody\n"), 0644))

	// A non-board file is a routine answer, not a CLI failure.
	require.NoError(t, runCLI(t, config.DefaultConfig(), "check", path))
}

func TestCheckBoardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.md")
	require.NoError(t, runCLI(t, config.DefaultConfig(), "init", path))
	require.NoError(t, runCLI(t, config.DefaultConfig(), "check", path))
}

func TestTagsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.md")
	text := "---\nkanban: true\n---\n\n## [a] Alpha\n\n- [ ] [c1] Work on #infra\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	require.NoError(t, runCLI(t, config.DefaultConfig(), "tags", path))
}

func TestExportWritesHTML(t *testing.T) {
	dir := t.TempDir()
	boardPath := filepath.Join(dir, "board.md")
	require.NoError(t, runCLI(t, config.DefaultConfig(), "init", boardPath, "--title", "Demo"))

	outPath := filepath.Join(dir, "board.html")
	cfg := &config.Config{AllowUnsafePaths: true}
	require.NoError(t, runCLI(t, cfg, "export", "-o", outPath, boardPath))

	page, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(page), "<!doctype html>")
	require.Contains(t, string(page), "Demo")
}

func TestValidateExportPath(t *testing.T) {
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		cfg     *config.Config
		wantErr bool
	}{
		{
			name:    "empty path",
			path:    "",
			cfg:     config.DefaultConfig(),
			wantErr: true,
		},
		{
			name:    "traversal segment",
			path:    "../out.html",
			cfg:     config.DefaultConfig(),
			wantErr: true,
		},
		{
			name:    "wrong extension",
			path:    "out.txt",
			cfg:     config.DefaultConfig(),
			wantErr: true,
		},
		{
			name:    "relative path under cwd",
			path:    "out.html",
			cfg:     config.DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "absolute path under cwd",
			path:    filepath.Join(cwd, "sub", "out.html"),
			cfg:     config.DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "outside allowed dirs",
			path:    filepath.Join(tmp, "out.html"),
			cfg:     config.DefaultConfig(),
			wantErr: true,
		},
		{
			name:    "allowed by config",
			path:    filepath.Join(tmp, "out.html"),
			cfg:     &config.Config{AllowedPaths: []string{tmp}},
			wantErr: false,
		},
		{
			name:    "unsafe override",
			path:    filepath.Join(tmp, "out.html"),
			cfg:     &config.Config{AllowUnsafePaths: true},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateExportPath(tt.path, tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestContainsTraversal(t *testing.T) {
	require.True(t, containsTraversal("../x.html"))
	require.True(t, containsTraversal("a/../b.html"))
	require.False(t, containsTraversal("a/b..c/x.html"))
	require.False(t, containsTraversal("out.html"))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "a,b,c", want: []string{"a", "b", "c"}},
		{input: " a , ,b ", want: []string{"a", "b"}},
		{input: ",,", want: []string{}},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestOutputErrorFormatsCode(t *testing.T) {
	err := outputError(errors.NewInvalidRequest("boom"))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "[INVALID_REQUEST]"))
	require.True(t, strings.Contains(err.Error(), "boom"))
}
