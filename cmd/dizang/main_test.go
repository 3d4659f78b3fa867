package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dizang-faith/dizang-faith-web/internal/logging"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verseDoc = `{"id":"huixiang","title":"回向","translator":"","chapters":[{"title":"回向偈","paragraphs":["「愿以此功德　　庄严佛净土，　　上报四重恩」"]}]}`

const lineDoc = `{"id":"zan","title":"赞","translator":"","chapters":[{"title":"一","paragraphs":["恒河沙劫说难尽，见闻瞻礼一念间，"]}]}`

type env struct {
	dir string
	db  string
	cfg string
}

func newEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		dir: filepath.Join(root, "sutras"),
		db:  filepath.Join(root, "dizang.db"),
		cfg: filepath.Join(root, "config.yaml"),
	}
	require.NoError(t, os.MkdirAll(e.dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "huixiang.json"), []byte(verseDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "zan.json"), []byte(lineDoc), 0644))
	return e
}

func (e env) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.cfg, "--dir", e.dir, "--db", e.db}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFormatVerses_NoArgsPrintsUsage(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("format-verses")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--dry-run")
}

func TestSplitLines_NoArgsPrintsUsage(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("split-lines")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "dizang split-lines --all")
	assert.NotContains(t, out, "--dry-run")
}

func TestFormatVerses_FileNotFound(t *testing.T) {
	e := newEnv(t)
	_, stderr, err := e.run("format-verses", "missing.json")
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "File not found: "+filepath.Join(e.dir, "missing.json")+"\n", stderr)
}

func TestFormatVerses_SingleFile(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("format-verses", "huixiang.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Processing: "+filepath.Join(e.dir, "huixiang.json"))
	assert.Contains(t, out, "  Chapter 1, Para 1: Split into 3 lines")

	doc, err := sutra.LoadFile(filepath.Join(e.dir, "huixiang.json"))
	require.NoError(t, err)
	assert.Len(t, doc.Chapters[0].Paragraphs, 3)
}

func TestFormatVerses_AllWithRecordAndHistory(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("format-verses", "--all", "--record")
	require.NoError(t, err)
	assert.Contains(t, out, "Done! Modified 1 file(s).")

	out, _, err = e.run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "format-verses")
	assert.Contains(t, out, "1/2")
}

func TestHistory_Empty(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("history")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}

func TestFormatVerses_DryRunLeavesFiles(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("format-verses", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "huixiang.json:\n  Chapter 1, Para 1: Would split into 3 lines")

	raw, err := os.ReadFile(filepath.Join(e.dir, "huixiang.json"))
	require.NoError(t, err)
	assert.Equal(t, verseDoc, string(raw))
}

func TestSplitLines_SingleFile(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("split-lines", filepath.Join(e.dir, "zan.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "(1 new lines)")
}

func TestValidate(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("validate", "huixiang.json", "zan.json")
	require.NoError(t, err)
	assert.Contains(t, out, "  ✓ Valid: "+filepath.Join(e.dir, "zan.json"))

	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "bad.json"), []byte(`{"id":"bad","title":"坏"}`), 0644))
	out, _, err = e.run("validate", "bad.json")
	require.Error(t, err)
	assert.Contains(t, out, "schema validation failed")
}

func TestConvert_WritesTraditionalVariant(t *testing.T) {
	e := newEnv(t)
	out, _, err := e.run("convert", "huixiang.json")
	require.NoError(t, err)
	twPath := filepath.Join(e.dir, "huixiang-tw.json")
	assert.Contains(t, out, "  ✓ Wrote: "+twPath)

	doc, err := sutra.LoadFile(twPath)
	require.NoError(t, err)
	assert.Equal(t, "huixiang", doc.ID)
	assert.Equal(t, "「願以此功德　　莊嚴佛淨土，　　上報四重恩」", doc.Chapters[0].Paragraphs[0].Text)
}

func TestConvert_RejectsUnknownScript(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run("convert", "--to", "klingon", "huixiang.json")
	assert.ErrorContains(t, err, "unknown script")
}

func TestImport(t *testing.T) {
	e := newEnv(t)
	src := filepath.Join(t.TempDir(), "T17n0830.txt")
	require.NoError(t, os.WriteFile(src, []byte("# header\nNo. 830\n大乘離文字普光明藏經\n唐中天竺三藏地婆訶羅譯\n\n如是我聞。\n"), 0644))

	out, _, err := e.run("import", src, "--id", "dasheng-liwen", "--title", "大乘离文字普光明藏经", "--translator", "唐 地婆诃罗 译")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 paragraphs")

	doc, err := sutra.LoadFile(filepath.Join(e.dir, "dasheng-liwen.json"))
	require.NoError(t, err)
	assert.Equal(t, []sutra.Paragraph{sutra.Plain("如是我闻。")}, doc.Chapters[0].Paragraphs)
	assert.Len(t, doc.Dedication, 8)
}

func TestImport_RequiresID(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run("import", "whatever.txt")
	assert.ErrorContains(t, err, "--id and --title are required")
}

func TestIndex(t *testing.T) {
	e := newEnv(t)
	jsonPath := filepath.Join(t.TempDir(), "catalog.json")
	out, _, err := e.run("index", "--json", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 file(s)")
	assert.FileExists(t, jsonPath)

	store, err := storage.NewSQLiteStore(e.db)
	require.NoError(t, err)
	defer store.Close()
	entry, err := store.GetEntry(context.Background(), "zan", "simplified")
	require.NoError(t, err)
	assert.Equal(t, "赞", entry.Title)
}

func TestImport_NFC(t *testing.T) {
	e := newEnv(t)
	src := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(src, []byte("\uf900\n"), 0644))

	_, _, err := e.run("import", src, "--id", "plain", "--title", "甲")
	require.NoError(t, err)
	doc, err := sutra.LoadFile(filepath.Join(e.dir, "plain.json"))
	require.NoError(t, err)
	assert.Equal(t, []sutra.Paragraph{sutra.Plain("\uf900")}, doc.Chapters[0].Paragraphs)

	_, _, err = e.run("import", src, "--id", "nfc", "--title", "甲", "--nfc")
	require.NoError(t, err)
	doc, err = sutra.LoadFile(filepath.Join(e.dir, "nfc.json"))
	require.NoError(t, err)
	assert.Equal(t, []sutra.Paragraph{sutra.Plain("\u8c48")}, doc.Chapters[0].Paragraphs)
}

func TestIndex_Recursive(t *testing.T) {
	e := newEnv(t)
	nested := filepath.Join(e.dir, "tw")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "zan-tw.json"), []byte(`{"id":"zan","title":"讚","translator":"","chapters":[]}`), 0644))

	out, _, err := e.run("index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 file(s)")

	out, _, err = e.run("index", "--recursive")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 3 file(s)")

	store, err := storage.NewSQLiteStore(e.db)
	require.NoError(t, err)
	defer store.Close()
	entry, err := store.GetEntry(context.Background(), "zan", "traditional")
	require.NoError(t, err)
	assert.Equal(t, "讚", entry.Title)
}

func TestOpenCatalog(t *testing.T) {
	e := newEnv(t)
	jsonPath := filepath.Join(t.TempDir(), "catalog.json")
	_, _, err := e.run("index", "--json", jsonPath)
	require.NoError(t, err)

	a := &app{logger: logging.Discard()}
	store, closeStore, err := a.openCatalog(false, jsonPath)
	require.NoError(t, err)
	defer closeStore()

	entry, err := store.GetEntry(context.Background(), "huixiang", "simplified")
	require.NoError(t, err)
	assert.Equal(t, "回向", entry.Title)

	store, _, err = a.openCatalog(false, "")
	require.NoError(t, err)
	assert.Nil(t, store)

	_, _, err = a.openCatalog(false, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open catalog file")
}

func TestServe_CatalogFlagsExclusive(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run("serve", "--catalog", "--catalog-json", "catalog.json")
	assert.Error(t, err)
}

func TestHistory_FilterByPass(t *testing.T) {
	e := newEnv(t)
	_, _, err := e.run("split-lines", "--all", "--record")
	require.NoError(t, err)

	out, _, err := e.run("history", "--pass", "format-verses")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)

	out, _, err = e.run("history", "--pass", "split-lines")
	require.NoError(t, err)
	assert.Contains(t, out, "split-lines")

	_, _, err = e.run("history", "--pass", "bogus")
	assert.ErrorContains(t, err, "unknown pass")
}
