package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPreferences_HeaderDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"english header", "provider,requester\nP1,R1\n", 1},
		{"spanish header", "Nombre_Vendedor,Comprador_Preferido\nP1,R1\nP2,R1\n", 2},
		{"seller header", "Seller,Buyer\nP1,R1\n", 1},
		{"no header", "P1,R1\nP2,R2\n", 2},
		{"bom before header", "\ufeffVendedor,Comprador\nP1,R1\n", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := ReadPreferences(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Len(t, rows, tc.want)
			assert.Equal(t, "P1", rows[0].Provider)
			assert.Equal(t, "R1", rows[0].Requester)
		})
	}
}

func TestReadPreferences_TrimsAndSkipsBlankRows(t *testing.T) {
	input := "provider,requester\n  Cafe Uno ,  Box Brand  \n,\n\nP2,\n"
	rows, err := ReadPreferences(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, PreferenceRow{Line: 2, Provider: "Cafe Uno", Requester: "Box Brand", Cells: 2}, rows[0])
	assert.Equal(t, 5, rows[1].Line)
	assert.Empty(t, rows[1].Requester)
}

func TestReadPreferences_QuotedCells(t *testing.T) {
	rows, err := ReadPreferences(strings.NewReader(`"D'Cleo, Coffee","Box Brand"` + "\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "D'Cleo, Coffee", rows[0].Provider)
}

func TestReadPreferences_MalformedCSV(t *testing.T) {
	_, err := ReadPreferences(strings.NewReader("P1,\"unterminated\n"))
	assert.Error(t, err)
}

func TestValidatePreferences(t *testing.T) {
	rows := []PreferenceRow{
		{Line: 1, Provider: "P1", Requester: "R1", Cells: 2},
		{Line: 2, Provider: "P1", Cells: 1},
		{Line: 3, Requester: "R1", Cells: 2},
		{Line: 4, Provider: "P2", Cells: 2},
	}
	errs := ValidatePreferences(rows)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "line 2")
	assert.Contains(t, errs[1].Error(), "provider is empty")
	assert.Contains(t, errs[2].Error(), "requester is empty")
}

func TestToGraph_CollapsesDuplicatesAndSkipsInvalid(t *testing.T) {
	rows, err := ReadPreferences(strings.NewReader("P1,R1\nP1,R1\nP2,\nP2,R1\nP3\n"))
	require.NoError(t, err)

	g := ToGraph(rows)
	assert.Equal(t, []preference.Pair{{Provider: "P1", Requester: "R1"}, {Provider: "P2", Requester: "R1"}}, g.Pairs())
}

func TestRoster_RoundTrip(t *testing.T) {
	input := "role,id\nbuyer,R1\nseller,P1\nrequester,R2\nprovider,P2\nbuyer,R1\n"
	rows, err := ReadRoster(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, ValidateRoster(rows))

	roster, err := ToRoster(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, roster.Requesters())
	assert.Equal(t, []string{"P1", "P2"}, roster.Providers())
}

func TestValidateRoster_Errors(t *testing.T) {
	rows, err := ReadRoster(strings.NewReader("judge,J1\nbuyer,\nbuyer,X\nseller,X\nseller\n"))
	require.NoError(t, err)

	errs := ValidateRoster(rows)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), `unknown role "judge"`)
	assert.Contains(t, errs[1].Error(), "id is empty")
	assert.Contains(t, errs[2].Error(), "both requester and provider")
	assert.Contains(t, errs[3].Error(), "expected role,id")

	_, err = ToRoster(rows)
	assert.Error(t, err)
}

func TestLoadPreferences_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.csv")
	var buf bytes.Buffer
	require.NoError(t, WriteSample(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rows, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Len(t, rows, len(samplePreferences))
	assert.Empty(t, ValidatePreferences(rows))

	g := ToGraph(rows)
	requesters, providers := g.Participants()
	assert.Contains(t, requesters, "Box Brand")
	assert.Contains(t, providers, "Del Tajo Coffee")
	assert.Equal(t, []string{"Box Brand", "Export Agency", "Productive Chains"}, g.Requested("Del Tajo Coffee"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadPreferences(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = LoadRoster(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestToRoster_Empty(t *testing.T) {
	roster, err := ToRoster(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, roster.RequesterCount())
	assert.False(t, roster.Has("x", domain.RoleProvider))
}
