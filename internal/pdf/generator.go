package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 37, Green: 99, Blue: 235}   // blue-600
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// ── Data structs ────────────────────────────────────────────────────────

// ProposalScenarioPDF is one card option rendered in the document.
type ProposalScenarioPDF struct {
	ID                string
	Titulo            string
	Produto           string
	Administradora    *string
	ValorCarta        float64
	PrazoMeses        int
	ComRedutor        *bool
	RedutorPercent    *float64
	ParcelaCheia      *float64
	ParcelaReduzida   *float64
	TaxaAdminAnual    *float64
	FundoReservaPct   *float64
	SeguroPrestamista *bool
	LanceFixoPct1     *float64
	LanceFixoPct2     *float64
	Observacoes       *string
}

// ProposalPDFData holds all data needed to generate a proposal PDF.
type ProposalPDFData struct {
	Titulo       string
	Campanha     *string
	Status       string
	CreatedAt    time.Time
	ValidadeDias *int

	ClienteNome     string
	ClienteTelefone *string
	ClienteEmail    *string

	ComentarioConsultor *string

	Cenarios []ProposalScenarioPDF
}

// GenerateProposalPDF creates a client-facing PDF document for the proposal.
func GenerateProposalPDF(data ProposalPDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(buildProposalHeader(data)...)

	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))

	m.AddRows(buildClientBlock(data)...)
	m.AddRows(row.New(6))

	for _, c := range data.Cenarios {
		m.AddRows(buildScenarioBlock(c)...)
		m.AddRows(row.New(4))
	}

	if data.ComentarioConsultor != nil && *data.ComentarioConsultor != "" {
		m.AddRows(row.New(4))
		m.AddRows(buildCommentBlock(*data.ComentarioConsultor)...)
	}

	m.AddRows(row.New(8))
	m.AddRows(buildValidityNote(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildProposalHeader(data ProposalPDFData) []core.Row {
	titleCol := col.New(8).Add(
		text.New("PROPOSTA", props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Color: colorAccent,
		}),
		text.New(data.Titulo, props.Text{
			Size:  11,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	metaCol := col.New(4).Add(
		text.New("Data: "+data.CreatedAt.Format("02/01/2006"), props.Text{
			Size:  8,
			Align: align.Right,
			Color: colorSecondary,
			Top:   4,
		}),
		text.New("Status: "+data.Status, props.Text{
			Size:  8,
			Align: align.Right,
			Color: colorSecondary,
			Top:   9,
		}),
	)

	return []core.Row{row.New(20).Add(titleCol, metaCol)}
}

// ── Client block ────────────────────────────────────────────────────────

func buildClientBlock(data ProposalPDFData) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(5).Add(
		col.New(12).Add(text.New("CLIENTE", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
	))
	rows = append(rows, row.New(5).Add(
		col.New(12).Add(text.New(data.ClienteNome, props.Text{Size: 10, Style: fontstyle.Bold, Color: colorPrimary})),
	))

	contact := ""
	if data.ClienteTelefone != nil && *data.ClienteTelefone != "" {
		contact = *data.ClienteTelefone
	}
	if data.ClienteEmail != nil && *data.ClienteEmail != "" {
		if contact != "" {
			contact += "  |  "
		}
		contact += *data.ClienteEmail
	}
	if contact != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(contact, props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	if data.Campanha != nil && *data.Campanha != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Campanha: "+*data.Campanha, props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	return rows
}

// ── Scenario block ──────────────────────────────────────────────────────

func buildScenarioBlock(c ProposalScenarioPDF) []core.Row {
	var rows []core.Row

	title := fmt.Sprintf("CENÁRIO %s — %s", c.ID, c.Titulo)
	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New(title, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   1,
		})),
	).WithStyle(&props.Cell{BackgroundColor: colorTableHead}))

	lines := scenarioLines(c)
	for i, line := range lines {
		r := row.New(5).Add(
			col.New(5).Add(text.New(line.label, props.Text{Size: 8, Color: colorSecondary})),
			col.New(7).Add(text.New(line.value, props.Text{Size: 8, Color: colorPrimary})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}

	if c.Observacoes != nil && *c.Observacoes != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Obs.: "+*c.Observacoes, props.Text{Size: 7, Color: colorSecondary})),
		))
	}

	return rows
}

type scenarioLine struct {
	label string
	value string
}

func scenarioLines(c ProposalScenarioPDF) []scenarioLine {
	lines := []scenarioLine{
		{"Produto", produtoLabel(c.Produto)},
		{"Valor da carta", formatCurrencyBRL(c.ValorCarta)},
		{"Prazo", fmt.Sprintf("%d meses", c.PrazoMeses)},
	}

	if c.Administradora != nil && *c.Administradora != "" {
		lines = append(lines, scenarioLine{"Administradora", *c.Administradora})
	}
	if c.ComRedutor != nil && *c.ComRedutor {
		redutor := "Sim"
		if c.RedutorPercent != nil {
			redutor = fmt.Sprintf("Sim (%.0f%%)", *c.RedutorPercent)
		}
		lines = append(lines, scenarioLine{"Redutor de parcela", redutor})
	}
	if c.ParcelaCheia != nil {
		lines = append(lines, scenarioLine{"Parcela cheia", formatCurrencyBRL(*c.ParcelaCheia)})
	}
	if c.ParcelaReduzida != nil {
		lines = append(lines, scenarioLine{"Parcela reduzida", formatCurrencyBRL(*c.ParcelaReduzida)})
	}
	if c.TaxaAdminAnual != nil {
		lines = append(lines, scenarioLine{"Taxa de administração", fmt.Sprintf("%.2f%%", *c.TaxaAdminAnual)})
	}
	if c.FundoReservaPct != nil {
		lines = append(lines, scenarioLine{"Fundo de reserva", fmt.Sprintf("%.2f%%", *c.FundoReservaPct)})
	}
	if c.SeguroPrestamista != nil && *c.SeguroPrestamista {
		lines = append(lines, scenarioLine{"Seguro prestamista", "Incluído"})
	}
	if c.LanceFixoPct1 != nil {
		lance := fmt.Sprintf("%.0f%%", *c.LanceFixoPct1)
		if c.LanceFixoPct2 != nil {
			lance += fmt.Sprintf(" / %.0f%%", *c.LanceFixoPct2)
		}
		lines = append(lines, scenarioLine{"Lance fixo", lance})
	}

	return lines
}

// ── Comment and validity ────────────────────────────────────────────────

func buildCommentBlock(comment string) []core.Row {
	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("COMENTÁRIO DO CONSULTOR", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		),
		row.New(8).Add(
			col.New(12).Add(text.New(comment, props.Text{Size: 8, Color: colorPrimary})),
		),
	}
}

func buildValidityNote(data ProposalPDFData) []core.Row {
	validade := 7
	if data.ValidadeDias != nil {
		validade = *data.ValidadeDias
	}
	note := fmt.Sprintf(
		"Proposta válida por %d dias a partir da data de emissão. Valores sujeitos a confirmação da administradora.",
		validade,
	)
	return []core.Row{
		row.New(6).Add(
			col.New(12).Add(text.New(note, props.Text{Size: 7, Color: colorSecondary})),
		),
	}
}

// ── Formatting helpers ──────────────────────────────────────────────────

func produtoLabel(produto string) string {
	switch produto {
	case "imobiliario":
		return "Imobiliário"
	case "auto":
		return "Automóvel"
	default:
		return "Outro"
	}
}

func formatCurrencyBRL(value float64) string {
	return "R$ " + formatThousands(value)
}

// formatThousands renders 250000.5 as "250.000,50" (pt-BR convention).
func formatThousands(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}

	var out []byte
	for i, d := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	result := string(out) + "," + decPart
	if neg {
		result = "-" + result
	}
	return result
}
