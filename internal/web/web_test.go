package web

import (
	"bytes"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"home.html", "about.html", "membership.html", "board.html", "events.html",
		"event.html", "documents.html", "awards.html", "not_found.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "not_found.html", map[string]interface{}{"SiteName": "Nurses", "Title": "Not found"}))
	assert.Contains(t, buf.String(), "Page not found")
}

func TestStatic(t *testing.T) {
	static, err := Static()
	require.NoError(t, err)

	_, err = fs.Stat(static, "site.css")
	assert.NoError(t, err)
}

func TestFormatDate(t *testing.T) {
	format := FuncMap["formatDate"].(func(time.Time) string)
	assert.Equal(t, "", format(time.Time{}))
	assert.Equal(t, "March 4, 2030", format(time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)))
}
