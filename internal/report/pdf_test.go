package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/nichescope/internal/config"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNiches(n int) []models.Niche {
	out := make([]models.Niche, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Niche{
			ID:               fmt.Sprintf("niche-%d", i),
			Name:             fmt.Sprintf("Café especial %d", i),
			Description:      "Pessoas reclamam que não encontram guias práticos para preparar café em casa.",
			DemandScore:      80,
			SupplyScore:      30,
			OpportunityScore: 75,
			Keywords: []models.Keyword{
				{Term: "café coado"}, {Term: "moedor manual"}, {Term: "v60"},
				{Term: "prensa francesa"}, {Term: "grãos especiais"}, {Term: "sixth term"},
			},
			SupplyInsights: models.SupplyInsights{QualityAssessment: "Baixa", CompetitorCount: "Poucos"},
			Products: []models.ProductOpportunity{
				{Type: "E-book", Title: "Guia do café coado", Description: "Passo a passo ilustrado."},
				{Type: "Curso", Title: "Barista em casa", Description: "Aulas curtas em vídeo."},
			},
		})
	}
	return out
}

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := NewExporter(nil).Render(&buf, "Café", sampleNiches(2), time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(nil).Render(&buf, "Nothing", nil, time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuild_Paginates(t *testing.T) {
	one := build("Café", sampleNiches(1), time.Now())
	require.NoError(t, one.Error())
	assert.Equal(t, 1, one.PageNo())

	many := build("Café", sampleNiches(10), time.Now())
	require.NoError(t, many.Error())
	assert.Greater(t, many.PageNo(), 3)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Café", "NicheScope_Report_Caf_.pdf"},
		{"My Saved Niches", "NicheScope_Report_My_Saved_Niches.pdf"},
		{"a/b\\c", "NicheScope_Report_a_b_c.pdf"},
		{"", "NicheScope_Report_.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.title))
		})
	}
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(" "))
	assert.Equal(t, "High", orNA("High"))
}

type memorySink struct {
	name string
	data []byte
	err  error
}

func (m *memorySink) Put(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name, m.data = name, data
	return "mem://" + name, nil
}

func TestExport(t *testing.T) {
	sink := &memorySink{}
	loc, err := NewExporter(nil).Export(context.Background(), sink, "My Saved Niches", sampleNiches(3))
	require.NoError(t, err)

	assert.Equal(t, "mem://NicheScope_Report_My_Saved_Niches.pdf", loc)
	assert.True(t, bytes.HasPrefix(sink.data, []byte("%PDF")))
}

func TestExport_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	_, err := NewExporter(nil).Export(context.Background(), &memorySink{err: boom}, "Pet", sampleNiches(1))
	assert.ErrorIs(t, err, boom)
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	loc, err := NewExporter(nil).Export(context.Background(), FileSink{Dir: dir}, "Pet", sampleNiches(1))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "NicheScope_Report_Pet.pdf"), loc)

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestSinkFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	assert.Equal(t, FileSink{Dir: "."}, SinkFromConfig(cfg))

	cfg.S3Bucket = "reports"
	s3sink, ok := SinkFromConfig(cfg).(*S3Sink)
	require.True(t, ok)
	assert.Equal(t, "reports", s3sink.opts.Bucket)
	assert.Equal(t, "us-east-1", s3sink.opts.Region)
}
