package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheltersJSON = `[{"name":"Lyngbo","address":"Hedevej 2","longitude":8.1,"latitude":56.2,"features":[9,10],"booking":0}]`

const lyngboPOI = "8.1,56.2,\"Lyngbo\",\"Features:\n" +
	"Address: Hedevej 2\n" +
	"Has shelter.\n" +
	"Has fireplace.\n" +
	"\"\n"

func runShelterPOI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := RunShelterPOI(context.Background(), args, Streams{Out: &out, Err: &errOut})
	return code, out.String(), errOut.String()
}

func TestShelterPOI_FromFile(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "shelters.json")
	require.NoError(t, os.WriteFile(path, []byte(sheltersJSON), 0o644))

	code, out, _ := runShelterPOI(t, "-f", path)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, lyngboPOI, out)
}

func TestShelterPOI_FetchAndSave(t *testing.T) {
	cleanEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sheltersJSON))
	}))
	defer srv.Close()
	t.Setenv("SHELTERS_API_URL", srv.URL)

	saved := filepath.Join(t.TempDir(), "shelters.json")
	code, out, _ := runShelterPOI(t, "--save", saved)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, lyngboPOI, out)

	b, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, sheltersJSON, string(b))
}

func TestShelterPOI_FeatureOverride(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	data := filepath.Join(dir, "shelters.json")
	require.NoError(t, os.WriteFile(data, []byte(sheltersJSON), 0o644))
	features := filepath.Join(dir, "features.yaml")
	require.NoError(t, os.WriteFile(features, []byte("features:\n  10: Campfire ring.\n"), 0o644))

	code, out, _ := runShelterPOI(t, "-f", data, "--features", features)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Campfire ring.\n")
	assert.NotContains(t, out, "Has fireplace.")
}

func TestShelterPOI_FileAndSaveExclusive(t *testing.T) {
	cleanEnv(t)

	code, out, errOut := runShelterPOI(t, "-f", "a.json", "--save", "b.json")
	assert.Equal(t, ExitUsage, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Usage:")
}

func TestShelterPOI_MissingFile(t *testing.T) {
	cleanEnv(t)

	code, out, errOut := runShelterPOI(t, "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "open shelters")
}

func TestShelterPOI_APIError(t *testing.T) {
	cleanEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()
	t.Setenv("SHELTERS_API_URL", srv.URL)

	code, out, errOut := runShelterPOI(t)
	assert.Equal(t, ExitError, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "status 410")
}
