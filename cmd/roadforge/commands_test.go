package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gubarz/roadforge/internal/config"
	"github.com/gubarz/roadforge/internal/ingest"
	"github.com/gubarz/roadforge/internal/loader"
	"github.com/gubarz/roadforge/internal/parser"
	"github.com/gubarz/roadforge/internal/records"
	"github.com/gubarz/roadforge/internal/ui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetDefault("format", ui.FormatText)
}

func TestStartDate(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		meta      string
		config    string
		want      string
		wantFound bool
		wantErr   bool
	}{
		{name: "flag wins", flag: "2026-01-05", meta: "2026-02-02", config: "2026-03-02", want: "2026-01-05", wantFound: true},
		{name: "front matter before config", meta: "2026-02-02", config: "2026-03-02", want: "2026-02-02", wantFound: true},
		{name: "config last", config: "2026-03-02", want: "2026-03-02", wantFound: true},
		{name: "none set"},
		{name: "invalid flag", flag: "05/01/2026", config: "2026-03-02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			viper.Set("start_date", tt.config)
			doc := &loader.Document{Path: "plan.md", Meta: loader.Meta{StartDate: tt.meta}}

			got, found, err := startDate(tt.flag, doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: ui.FormatText, want: ui.FormatJSON},
		{format: ui.FormatJSON, want: ui.FormatJSON},
		{format: ui.FormatYAML, want: ui.FormatYAML},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resetConfig(t)
			config.SetFormat(tt.format)

			got, err := exportFormat()
			if tt.wantErr {
				assert.ErrorIs(t, err, ui.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletedDays(t *testing.T) {
	roadmap := parser.Parse("# WEEK 2 – B\n### Day 1\n- c\n# WEEK 1 – A\n### Day 1\n- a\n### Day 2\n- b\n")
	set := records.Build(roadmap, time.Time{})

	ids := completedDays(set, 2)
	require.Len(t, ids, 2)
	assert.Equal(t, set.Days[0].ID, ids[0])
	assert.Equal(t, set.Days[1].ID, ids[1])
	assert.Equal(t, 1, set.Days[0].WeekNumber)

	set.Complete(ids...)
	assert.Equal(t, 2, set.Progress.DaysCompleted)
	assert.Equal(t, 0, set.Progress.Streak)
	assert.Empty(t, completedDays(set, 0))
}

func TestIngestHonoursFrontMatterExclusions(t *testing.T) {
	resetConfig(t)
	viper.Set("exclude_sections", []string{"Notes"})

	doc, err := loader.Read("plan.md", strings.NewReader(`---
exclude_sections: [Glossary]
---
# Glossary
terms

# Notes
keep

# WEEK 1 – Start
- one
`))
	require.NoError(t, err)

	result, err := ingest.NewIngester(doc.Parser(parserOptions()...), nil).Ingest(context.Background(), doc.Body)
	require.NoError(t, err)

	_, hasGlossary := result.Roadmap.Reference("Glossary")
	_, hasNotes := result.Roadmap.Reference("Notes")
	assert.False(t, hasGlossary)
	assert.True(t, hasNotes)
	assert.Equal(t, doc.Parse(parserOptions()...).References, result.Roadmap.References)
}
