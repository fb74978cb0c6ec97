// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anthology

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/anthology-export/internal/extract"
	"github.com/pdiddy/anthology-export/internal/httputil"
	"github.com/pdiddy/anthology-export/internal/locate"
	"github.com/pdiddy/anthology-export/internal/output"
	"github.com/pdiddy/anthology-export/pkg/types"
)

const sampleXML = `<?xml version='1.0' encoding='UTF-8'?>
<collection id="2021.acl">
  <volume id="long" ingest-date="2021-07-25">
    <meta>
      <booktitle>Proceedings of ACL</booktitle>
    </meta>
    <frontmatter>
      <url hash="0">2021.acl-long.0</url>
    </frontmatter>
    <paper id="1">
      <title><fixed-case>G</fixed-case>PT-3, Revisited</title>
      <author><first>Jane</first><last>Doe</last></author>
      <author><last>Smith</last></author>
      <pages>1–10</pages>
      <abstract>Large models, it turns out, are "large".</abstract>
      <url hash="abc">2021.acl-long.1</url>
    </paper>
    <paper id="2">
      <title>No Link</title>
    </paper>
  </volume>
</collection>
`

// testServer serves body at /2021.acl.xml and 404 elsewhere.
func testServer(t *testing.T, body string, calls *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.URL.Path != "/xml/2021.acl.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testCfg(ts *httptest.Server, dir string, format types.OutputFormat) types.ExportConfig {
	return types.ExportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "test/0.1",
		},
		BaseURL:   ts.URL + "/xml",
		OutputDir: dir,
		Format:    format,
	}
}

var acl2021 = locate.Selector{Conference: "acl", Year: 2021}

func TestExportCSV(t *testing.T) {
	ts := testServer(t, sampleXML, nil)
	dir := t.TempDir()
	var log bytes.Buffer

	res, err := Export(context.Background(), ts.Client(), acl2021, testCfg(ts, dir, types.FormatCSV), &log)
	require.NoError(t, err)

	assert.Equal(t, ts.URL+"/xml/2021.acl.xml", res.URL)
	assert.Equal(t, filepath.Join(dir, "acl.2021.csv"), res.Path)
	assert.Contains(t, log.String(), "URL: "+res.URL)
	assert.Contains(t, log.String(), "extracted 2 records")

	want := []types.Record{
		{
			Title:    "GPT-3, Revisited",
			Author:   "Jane Doe, Smith",
			Abstract: `Large models, it turns out, are "large".`,
			Url:      "https://www.aclweb.org/anthology/2021.acl-long.1",
		},
		{Title: "No Link"},
	}
	assert.Equal(t, want, res.Records)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	got, err := output.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportIdempotent(t *testing.T) {
	ts := testServer(t, sampleXML, nil)
	dir := t.TempDir()
	cfg := testCfg(ts, dir, types.FormatCSV)

	res, err := Export(context.Background(), ts.Client(), acl2021, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	first, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	_, err = Export(context.Background(), ts.Client(), acl2021, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	second, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), "Title,Author,Abstract,Url\n"))
}

func TestExportSQLite(t *testing.T) {
	ts := testServer(t, sampleXML, nil)
	dir := t.TempDir()

	res, err := Export(context.Background(), ts.Client(), acl2021, testCfg(ts, dir, types.FormatSQLite), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acl.2021.db"), res.Path)

	store, err := output.OpenStore(res.Path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Records(context.Background(), acl2021)
	require.NoError(t, err)
	assert.Equal(t, res.Records, got)
}

func TestExportCustomHomepage(t *testing.T) {
	ts := testServer(t, sampleXML, nil)
	cfg := testCfg(ts, t.TempDir(), types.FormatJSON)
	cfg.Homepage = "https://aclanthology.org/{path}/"

	res, err := Export(context.Background(), ts.Client(), acl2021, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "https://aclanthology.org/2021.acl-long.1/", res.Records[0].Url)
	assert.Equal(t, ".json", filepath.Ext(res.Path))
}

func TestExportUnknownConference(t *testing.T) {
	var calls int32
	ts := testServer(t, sampleXML, &calls)
	dir := t.TempDir()

	_, err := Export(context.Background(), ts.Client(),
		locate.Selector{Conference: "nonexistent", Year: 2019},
		testCfg(ts, dir, types.FormatCSV), &bytes.Buffer{})
	require.Error(t, err)

	var unknown *locate.UnknownConferenceError
	assert.ErrorAs(t, err, &unknown)
	assert.True(t, strings.HasPrefix(err.Error(), "locate: "))
	assert.Zero(t, atomic.LoadInt32(&calls), "no request should be made")
	assertEmptyDir(t, dir)
}

func TestExportNotFound(t *testing.T) {
	ts := testServer(t, sampleXML, nil)
	dir := t.TempDir()

	_, err := Export(context.Background(), ts.Client(),
		locate.Selector{Conference: "acl", Year: 2099},
		testCfg(ts, dir, types.FormatCSV), &bytes.Buffer{})
	require.Error(t, err)

	var netErr *httputil.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.True(t, strings.HasPrefix(err.Error(), "fetch: "))
	assertEmptyDir(t, dir)
}

func TestExportMalformedXML(t *testing.T) {
	ts := testServer(t, `<collection><volume><paper><title>broken</paper>`, nil)
	dir := t.TempDir()

	_, err := Export(context.Background(), ts.Client(), acl2021, testCfg(ts, dir, types.FormatCSV), &bytes.Buffer{})
	require.Error(t, err)

	var perr *extract.ParseError
	assert.ErrorAs(t, err, &perr)
	assert.True(t, strings.HasPrefix(err.Error(), "extract: "))
	assertEmptyDir(t, dir)
}

func TestExportKeepsPreviousOutputOnFailure(t *testing.T) {
	good := testServer(t, sampleXML, nil)
	bad := testServer(t, `not xml`, nil)
	dir := t.TempDir()

	res, err := Export(context.Background(), good.Client(), acl2021, testCfg(good, dir, types.FormatCSV), &bytes.Buffer{})
	require.NoError(t, err)
	before, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	_, err = Export(context.Background(), bad.Client(), acl2021, testCfg(bad, dir, types.FormatCSV), &bytes.Buffer{})
	require.Error(t, err)

	after, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExportTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	cfg := testCfg(ts, t.TempDir(), types.FormatCSV)
	_, err := Export(context.Background(), httputil.NewClient(50*time.Millisecond), acl2021, cfg, &bytes.Buffer{})

	var netErr *httputil.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "acl.2021.csv", OutputPath(acl2021, types.ExportConfig{}))
	assert.Equal(t, filepath.Join("out", "acl.2021.yaml"),
		OutputPath(acl2021, types.ExportConfig{OutputDir: "out", Format: types.FormatYAML}))
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
