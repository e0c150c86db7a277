package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestPipeline_Run_CleanCompile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "math.tc", `module math;

int square(int x) {
	return x * x;
}
`)

	p := NewPipeline(Options{})
	status := p.Run(FileList{{Path: path, IsCode: true}}, nil)

	assert.Equal(t, 0, status, p.Bag().String())
	assert.False(t, p.Bag().HasErrors())
}

func TestPipeline_Run_TypeErrorFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.tc", `module bad;

int broken() {
	return "not an int";
}
`)

	p := NewPipeline(Options{})
	status := p.Run(FileList{{Path: path, IsCode: true}}, nil)

	assert.Equal(t, -1, status)
	assert.True(t, p.Bag().HasErrors())
}

func TestPipeline_Run_CrossModuleImport(t *testing.T) {
	dir := t.TempDir()
	libDecl := writeFile(t, dir, "lib.td", `module lib;

int helper(int x);
`)
	mainPath := writeFile(t, dir, "main.tc", `module main;
import lib;

int useHelper(int x) {
	return helper(x);
}
`)

	p := NewPipeline(Options{})
	status := p.Run(FileList{
		{Path: libDecl, IsCode: false},
		{Path: mainPath, IsCode: true},
	}, nil)

	assert.Equal(t, 0, status, p.Bag().String())
}

func TestPipeline_Run_UnknownFilePathIsFatal(t *testing.T) {
	p := NewPipeline(Options{})
	status := p.Run(FileList{{Path: filepath.Join(t.TempDir(), "missing.tc"), IsCode: true}}, nil)

	assert.Equal(t, -1, status)
	assert.True(t, p.Bag().HasErrors())
}

func TestPipeline_Run_DeclarationAndCodeFilesMerge(t *testing.T) {
	dir := t.TempDir()
	decl := writeFile(t, dir, "shapes.td", `module shapes;

struct Point {
	int x;
	int y;
};
`)
	code := writeFile(t, dir, "shapes.tc", `module shapes;

int originX() {
	return 0;
}
`)

	p := NewPipeline(Options{})
	status := p.Run(FileList{
		{Path: decl, IsCode: false},
		{Path: code, IsCode: true},
	}, nil)

	assert.Equal(t, 0, status, p.Bag().String())
}
