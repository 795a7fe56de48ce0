package database

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/greenskies/backend/models"
)

func TestRenderHTMLReport(t *testing.T) {
	manual := sampleEntry(2)
	manual.Origin, manual.Destination = "", ""
	manual.AircraftType = `<script>alert("x")</script>`
	entries := []models.HistoryEntry{sampleEntry(0), sampleEntry(1), manual}

	var buf bytes.Buffer
	require.NoError(t, RenderHTMLReport(&buf, entries))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	rows := doc.Find("#history tbody tr")
	assert.Equal(t, 3, rows.Length())
	assert.Equal(t, "DEL → BOM", rows.First().Find("td.route").Text())
	assert.Equal(t, "165.0", rows.First().Find("td.co2").Text())
	assert.Equal(t, `<script>alert("x")</script>`, rows.Last().Find("td.aircraft").Text(), "aircraft names are escaped, not executed")
	assert.Equal(t, 0, doc.Find("td script").Length())
	assert.Equal(t, "3 flights, 495.0 kg CO₂ in total", doc.Find("#summary").Text())
}

func TestRenderHTMLReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTMLReport(&buf, nil))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#history tbody tr").Length())
	assert.Contains(t, doc.Find("#summary").Text(), "0 flights")
}
