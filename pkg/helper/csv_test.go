package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
)

func TestParseCSV(t *testing.T) {
	doc, err := ParseCSV("Name,Age\nAna,30\nBruno,25")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, doc.Headers)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, map[string]string{"Name": "Ana", "Age": "30"}, doc.Rows[0])
	assert.Equal(t, map[string]string{"Name": "Bruno", "Age": "25"}, doc.Rows[1])
}

func TestParseCSVCleansCells(t *testing.T) {
	doc, err := ParseCSV("\"Name\",'Age'\r\n\r\n 'Ana' ,30\r\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, doc.Headers)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Ana", doc.Rows[0]["Name"])
	assert.Equal(t, "30", doc.Rows[0]["Age"])
}

func TestParseCSVPadsShortRows(t *testing.T) {
	doc, err := ParseCSV("Name,Age,City\nAna,30")
	require.NoError(t, err)

	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "", doc.Rows[0]["City"])
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV("\n\n  \n")
	assert.Error(t, err)
}

// A comma always splits, even inside quotes. The cell keeps the text up to
// the comma and the overflow cell is dropped against the header width.
func TestParseCSVQuotedCommaLimitation(t *testing.T) {
	doc, err := ParseCSV("Name,Notes\nAna,\"likes, cats\"")
	require.NoError(t, err)

	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "likes", doc.Rows[0]["Notes"])
}

func TestAutoMapColumns(t *testing.T) {
	fields := []models.Field{
		{Name: "nome", Label: "Nome"},
		{Name: "idade", Label: "Idade"},
	}

	mapping := AutoMapColumns([]string{"NOME", "idade", "Cidade"}, fields, config.MappingIgnore)

	assert.Equal(t, "nome", mapping["NOME"])
	assert.Equal(t, "idade", mapping["idade"])
	assert.Equal(t, config.MappingIgnore, mapping["Cidade"])

	wizard := AutoMapColumns([]string{"Cidade"}, fields, config.MappingNew)
	assert.Equal(t, config.MappingNew, wizard["Cidade"])
}

func TestExtractOptions(t *testing.T) {
	doc := models.CSVDocument{
		Rows: []map[string]string{
			{"Status": "Em Análise"},
			{"Status": "Aprovado"},
			{"Status": "Em Análise"},
			{"Status": ""},
			{"Status": "Negado"},
		},
	}

	options := ExtractOptions(doc, "Status", 50)

	require.Len(t, options, 3)
	assert.Equal(t, models.Option{Label: "Em Análise", Value: "em_analise"}, options[0])
	assert.Equal(t, models.Option{Label: "Aprovado", Value: "aprovado"}, options[1])
	assert.Equal(t, models.Option{Label: "Negado", Value: "negado"}, options[2])
}

func TestExtractOptionsCap(t *testing.T) {
	rows := make([]map[string]string, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, map[string]string{"Code": string(rune('A' + i%26)) + string(rune('0'+i/26))})
	}

	options := ExtractOptions(models.CSVDocument{Rows: rows}, "Code", 50)
	assert.Len(t, options, 50)
}

func TestBuildCSV(t *testing.T) {
	fields := []models.Field{
		{Name: "nome", Label: "Nome"},
		{Name: "obs", Label: "Observações"},
	}

	records := []models.Record{
		{
			Id:        "r1",
			Status:    config.StatusPending,
			CreatedAt: "2026-08-30T10:00:00Z",
			Data: map[string]any{
				"nome":          "Ana",
				"obs":           `tem "gatos", muitos`,
				config.BatchKey: "b1",
			},
		},
	}

	content := BuildCSV(fields, records, nil)

	require.True(t, strings.HasPrefix(content, "\uFEFF"))

	lines := strings.Split(strings.TrimPrefix(content, "\uFEFF"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "ID,Status,Data,Nome,Observações", lines[0])
	assert.Equal(t, `r1,Pendente,30.08.2026,Ana,"tem ""gatos"", muitos"`, lines[1])
	assert.NotContains(t, content, config.BatchKey)
}

func TestBuildCSVSelectedFields(t *testing.T) {
	fields := []models.Field{
		{Name: "nome", Label: "Nome"},
		{Name: "idade", Label: "Idade"},
	}

	records := []models.Record{
		{Id: "r1", Status: config.StatusApproved, CreatedAt: "2026-01-02T00:00:00Z", Data: map[string]any{"nome": "Ana", "idade": "30"}},
	}

	content := BuildCSV(fields, records, []string{"idade"})
	lines := strings.Split(strings.TrimPrefix(content, "\uFEFF"), "\n")

	assert.Equal(t, "ID,Status,Data,Idade", lines[0])
	assert.Equal(t, "r1,Aprovado,02.01.2026,30", lines[1])
}

// Exported files are re-importable: re-parsing the output reproduces the
// field values, the labels map back onto the stored names and the reserved
// batch key never survives the trip.
func TestBuildCSVReimportRoundTrip(t *testing.T) {
	fields := []models.Field{
		{Name: "nome", Label: "Nome"},
		{Name: "idade", Label: "Idade"},
	}

	records := []models.Record{
		{Id: "r1", Status: config.StatusPending, CreatedAt: "2026-08-30T10:00:00Z", Data: map[string]any{"nome": "Ana", "idade": "30", config.BatchKey: "b1"}},
		{Id: "r2", Status: config.StatusApproved, CreatedAt: "2026-08-31T10:00:00Z", Data: map[string]any{"nome": "Bruno", "idade": "25"}},
	}

	content := BuildCSV(fields, records, nil)

	doc, err := ParseCSV(strings.TrimPrefix(content, "\uFEFF"))
	require.NoError(t, err)

	mapping := AutoMapColumns(doc.Headers, fields, config.MappingIgnore)
	assert.Equal(t, "nome", mapping["Nome"])
	assert.Equal(t, "idade", mapping["Idade"])
	assert.Equal(t, config.MappingIgnore, mapping["ID"])
	assert.Equal(t, config.MappingIgnore, mapping["Status"])

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "Ana", doc.Rows[0]["Nome"])
	assert.Equal(t, "30", doc.Rows[0]["Idade"])
	assert.Equal(t, "Bruno", doc.Rows[1]["Nome"])
	assert.Equal(t, "25", doc.Rows[1]["Idade"])

	assert.NotContains(t, content, config.BatchKey)
	assert.NotContains(t, doc.Headers, config.BatchKey)
}
