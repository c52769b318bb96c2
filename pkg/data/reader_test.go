package data

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "testdata/users.yml", []byte(`
users:
  valid:
    email: jane@app.test
`), 0640))

	r := NewReaderFs(fs)
	got, err := r.ReadYAML("testdata/users.yml")
	require.NoError(t, err)

	users, ok := got["users"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, users, "valid")
}

func TestReadYAMLMissingFile(t *testing.T) {
	r := NewReaderFs(afero.NewMemMapFs())
	_, err := r.ReadYAML("nope.yml")
	assert.Error(t, err)
}

func TestReadYAMLInto(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "creds.yml", []byte("email: jane@app.test\npassword: secret\n"), 0640))

	var creds struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	}
	r := NewReaderFs(fs)
	require.NoError(t, r.ReadYAMLInto("creds.yml", &creds))
	assert.Equal(t, "jane@app.test", creds.Email)
	assert.Equal(t, "secret", creds.Password)
}

func TestReadJSONAndValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data.json", []byte(`{
  "users": {
    "valid": {"email": "jane@app.test", "password": "secret"}
  }
}`), 0640))

	r := NewReaderFs(fs)

	got, err := r.ReadJSON("data.json")
	require.NoError(t, err)
	assert.Contains(t, got, "users")

	email, err := r.JSONValue("data.json", "users.valid.email")
	require.NoError(t, err)
	assert.Equal(t, "jane@app.test", email)

	_, err = r.JSONValue("data.json", "users.admin.email")
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewReaderFs(fs)

	in := map[string]interface{}{"name": "smoke", "count": 3}

	require.NoError(t, r.WriteYAML("out/result.yml", in))
	got, err := r.ReadYAML("out/result.yml")
	require.NoError(t, err)
	assert.Equal(t, "smoke", got["name"])

	require.NoError(t, r.WriteJSON("out/result.json", in))
	gotJSON, err := r.ReadJSON("out/result.json")
	require.NoError(t, err)
	assert.Equal(t, "smoke", gotJSON["name"])
}
