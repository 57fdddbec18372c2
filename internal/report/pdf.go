/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// Page layout in points. A4 portrait.
const (
	marginL = 50.0
	marginR = 50.0
	marginT = 55.0
	marginB = 50.0

	maxLocsFull    = 20 // locations shown on a full card
	maxLocsCompact = 10 // locations shown on a compact card

	locLineH = 11.0
	locFS    = 7.5
)

// rgb is an 8-bit color triple for gofpdf's Set*Color calls.
type rgb struct{ r, g, b int }

// Midnight theme.
var (
	colPageBG      = rgb{0x0D, 0x1B, 0x2A}
	colCardBG      = rgb{0x1B, 0x28, 0x38}
	colCardBorder  = rgb{0x2A, 0x3A, 0x4E}
	colSectionBG   = rgb{0x15, 0x22, 0x32}
	colLocBG       = rgb{0x0F, 0x1D, 0x2D}
	colTableHdrBG  = rgb{0x1B, 0x28, 0x38}
	colTableAlt    = rgb{0x13, 0x20, 0x30}
	colText        = rgb{0xE0, 0xE6, 0xED}
	colText2       = rgb{0x88, 0x99, 0xAA}
	colText3       = rgb{0x5A, 0x6A, 0x7A}
	colAccent      = rgb{0x2A, 0x3A, 0x4E}
	colWhite       = rgb{0xFF, 0xFF, 0xFF}
	colBannerTop   = rgb{0x0D, 0x1B, 0x2A}
	colBannerBot   = rgb{0x09, 0x15, 0x20}
	colSuggestBG   = rgb{0x12, 0x22, 0x18}
	colSuggestText = rgb{0x5A, 0xBF, 0x7B}
)

func severityBG(s model.Severity) rgb {
	switch s {
	case model.SeverityCritical:
		return rgb{0xFF, 0x47, 0x57}
	case model.SeverityHigh:
		return rgb{0xFF, 0x8C, 0x42}
	case model.SeverityMedium:
		return rgb{0xFF, 0xCB, 0x47}
	case model.SeverityLow:
		return rgb{0x2E, 0xD5, 0x73}
	default:
		return rgb{0x7C, 0x8A, 0x96}
	}
}

func severityFG(s model.Severity) rgb {
	if s == model.SeverityMedium {
		return colPageBG
	}
	return colWhite
}

var allSeverities = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityStyle,
}

// WritePDF renders the findings into a styled PDF report at outPath.
// gameName appears in the title banner; gamePath, when set, shortens
// finding locations to paths relative to the project root.
func WritePDF(findings []model.Finding, outPath, gameName, gamePath string) error {
	b := newPDFBuilder(gameName, gamePath)

	b.drawTitlePage(findings)

	grouped := groupFindings(findings, gamePath)
	for _, cat := range categoryOrder() {
		groups, ok := grouped[cat]
		if !ok {
			continue
		}
		b.newPage()
		total := 0
		for _, g := range groups {
			total += g.Count()
		}
		b.drawSectionHeader(cat, total, len(groups), severityBG(groups[0].Severity))
		b.drawGroupedFindings(groups)
	}

	b.newPage()
	b.drawSummary(findings)

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := b.pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfBuilder tracks the cursor and wraps gofpdf's drawing primitives.
// All text placement uses absolute baseline coordinates; auto page
// breaks are disabled so cards can measure before they draw.
type pdfBuilder struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	gameName string
	gamePath string
	pageW    float64
	pageH    float64
	cw       float64 // content width between the margins
	y        float64
}

func newPDFBuilder(gameName, gamePath string) *pdfBuilder {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s — Analysis Report", gameName), true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)

	b := &pdfBuilder{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		gameName: gameName,
		gamePath: gamePath,
	}
	b.pageW, b.pageH = pdf.GetPageSize()
	b.cw = b.pageW - marginL - marginR

	// Midnight background on every page.
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(colPageBG.r, colPageBG.g, colPageBG.b)
		pdf.Rect(0, 0, b.pageW, b.pageH, "F")
	})
	pdf.SetFooterFunc(func() {
		text := fmt.Sprintf("Page %d", pdf.PageNo())
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(colText3.r, colText3.g, colText3.b)
		tw := pdf.GetStringWidth(text)
		pdf.Text((b.pageW-tw)/2, b.pageH-25, text)
	})
	return b
}

func (b *pdfBuilder) newPage() {
	b.pdf.AddPage()
	b.y = marginT
}

func (b *pdfBuilder) avail() float64 {
	return b.pageH - marginB - b.y
}

func (b *pdfBuilder) ensureSpace(needed float64) {
	if b.avail() < needed {
		b.newPage()
	}
}

// enc maps text into the PDF's cp1252 core-font encoding, with an
// ASCII fallback for the call-cycle arrow.
func (b *pdfBuilder) enc(s string) string {
	return b.tr(strings.ReplaceAll(s, "→", "->"))
}

func (b *pdfBuilder) setFont(family, style string, size float64) {
	b.pdf.SetFont(family, style, size)
}

// text draws s with its baseline at (x, b.y) and returns its width.
func (b *pdfBuilder) text(x float64, s, family, style string, size float64, c rgb) float64 {
	b.setFont(family, style, size)
	b.pdf.SetTextColor(c.r, c.g, c.b)
	enc := b.enc(s)
	b.pdf.Text(x, b.y, enc)
	return b.pdf.GetStringWidth(enc)
}

func (b *pdfBuilder) width(s, family, style string, size float64) float64 {
	b.setFont(family, style, size)
	return b.pdf.GetStringWidth(b.enc(s))
}

func (b *pdfBuilder) fillRect(x, y, w, h float64, c rgb) {
	b.pdf.SetFillColor(c.r, c.g, c.b)
	b.pdf.Rect(x, y, w, h, "F")
}

func (b *pdfBuilder) cardRect(x, y, w, h float64, fill, border rgb, lineWidth float64) {
	b.pdf.SetFillColor(fill.r, fill.g, fill.b)
	b.pdf.SetDrawColor(border.r, border.g, border.b)
	b.pdf.SetLineWidth(lineWidth)
	b.pdf.Rect(x, y, w, h, "FD")
}

func (b *pdfBuilder) rule(width float64) {
	b.pdf.SetDrawColor(colAccent.r, colAccent.g, colAccent.b)
	b.pdf.SetLineWidth(width)
	b.pdf.Line(marginL, b.y, b.pageW-marginR, b.y)
}

// badge draws a filled severity tag with its text baseline at (x, y)
// and returns the badge width.
func (b *pdfBuilder) badge(x, y float64, s string, bg, fg rgb, size, hpad, vpad float64) float64 {
	tw := b.width(s, "Helvetica", "B", size)
	bw := tw + hpad*2
	bh := size + vpad*2
	b.fillRect(x, y-bh+vpad, bw, bh, bg)
	b.setFont("Helvetica", "B", size)
	b.pdf.SetTextColor(fg.r, fg.g, fg.b)
	b.pdf.Text(x+hpad, y, b.enc(s))
	return bw
}

// wrap splits s into lines that fit within w at the given font.
func (b *pdfBuilder) wrap(s, family, style string, size, w float64) []string {
	if s == "" {
		return nil
	}
	b.setFont(family, style, size)
	split := b.pdf.SplitLines([]byte(b.enc(s)), w)
	lines := make([]string, len(split))
	for i, ln := range split {
		lines[i] = string(ln)
	}
	return lines
}

// truncate shortens s with a trailing ellipsis until it fits w.
func (b *pdfBuilder) truncate(s, family, style string, size, w float64) string {
	b.setFont(family, style, size)
	if b.pdf.GetStringWidth(b.enc(s)) <= w {
		return s
	}
	for len(s) > 8 && b.pdf.GetStringWidth(b.enc(s+"...")) > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// locBlockHeight is the exact height of a two-column location block.
func locBlockHeight(shown int, overflow bool) float64 {
	rows := (shown + 1) / 2
	if overflow {
		rows++
	}
	return float64(rows)*locLineH + 6
}

// drawLocations renders locations in two columns starting at b.y and
// advances the cursor past them.
func (b *pdfBuilder) drawLocations(locs []Location, leftX float64, maxN int) {
	shown := locs
	if len(shown) > maxN {
		shown = shown[:maxN]
	}
	overflow := len(locs) - len(shown)
	colW := (b.cw - 40) / 2
	col2X := leftX + colW + 8

	b.setFont("Courier", "", locFS)
	b.pdf.SetTextColor(colText2.r, colText2.g, colText2.b)
	for i, loc := range shown {
		s := fmt.Sprintf("%s:%d", loc.File, loc.Line)
		for b.pdf.GetStringWidth(b.enc(s)) > colW-4 && len(s) > 20 {
			s = s[:len(s)-4] + "..."
		}
		x := leftX
		if i%2 == 1 {
			x = col2X
		}
		b.pdf.Text(x, b.y, b.enc(s))
		if i%2 == 1 || i == len(shown)-1 {
			b.y += locLineH
		}
	}
	if overflow > 0 {
		noun := "location"
		if overflow != 1 {
			noun = "locations"
		}
		b.text(leftX, fmt.Sprintf("... and %d more %s", overflow, noun), "Helvetica", "", locFS, colText3)
		b.y += locLineH
	}
}

// drawLocationsInline renders up to maxN locations on one line, for
// table rows.
func (b *pdfBuilder) drawLocationsInline(locs []Location, leftX float64, maxN int) {
	shown := locs
	if len(shown) > maxN {
		shown = shown[:maxN]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, loc := range shown {
		parts = append(parts, fmt.Sprintf("%s:%d", loc.File, loc.Line))
	}
	if overflow := len(locs) - len(shown); overflow > 0 {
		parts = append(parts, fmt.Sprintf("and %d more", overflow))
	}
	text := strings.Join(parts, "  |  ")
	maxW := b.cw - (leftX - marginL) - 10
	b.setFont("Courier", "", 7)
	for b.pdf.GetStringWidth(b.enc(text)) > maxW && len(text) > 30 {
		text = text[:len(text)-4] + "..."
	}
	b.pdf.SetTextColor(colText3.r, colText3.g, colText3.b)
	b.pdf.Text(leftX, b.y, b.enc(text))
}

// -- title page ----------------------------------------------------------

func (b *pdfBuilder) drawTitlePage(findings []model.Finding) {
	b.newPage()
	b.pdf.Bookmark("Overview", 0, -1)

	const bannerH = 110.0
	b.fillRect(0, 0, b.pageW, bannerH, colBannerBot)
	b.fillRect(0, 0, b.pageW, bannerH*0.6, colBannerTop)

	b.y = 50
	b.text(marginL, b.gameName, "Helvetica", "B", 22, colWhite)
	b.y = 74
	b.text(marginL, "Ren'Py Analyzer Report", "Helvetica", "", 12, colText2)
	b.y = 94
	b.text(marginL, time.Now().Format("January 02, 2006 at 15:04"), "Helvetica", "", 9, colText3)

	b.y = bannerH + 22
	if b.gamePath != "" {
		b.text(marginL, "Project path:", "Helvetica", "B", 9, colText2)
		b.y += 14
		dp := b.gamePath
		b.setFont("Courier", "", 8)
		for b.pdf.GetStringWidth(b.enc(dp)) > b.cw && len(dp) > 40 {
			dp = "..." + dp[4:]
		}
		b.text(marginL, dp, "Courier", "", 8, colText3)
		b.y += 22
	}

	b.y += 8
	b.text(marginL, "Summary", "Helvetica", "B", 18, colWhite)
	b.y += 8
	b.rule(0.6)
	b.y += 44

	total := len(findings)
	sevCounts := make(map[model.Severity]int)
	for _, f := range findings {
		sevCounts[f.Severity]++
	}
	totalW := b.text(marginL, fmt.Sprintf("%d", total), "Helvetica", "B", 40, colWhite)
	saveY := b.y
	b.y -= 9
	b.text(marginL+totalW+12, "Total Findings", "Helvetica", "", 14, colText2)
	b.y = saveY + 32

	x := marginL
	for _, sev := range allSeverities {
		label := fmt.Sprintf("%s  %d", sev.String(), sevCounts[sev])
		bw := b.badge(x, b.y, label, severityBG(sev), severityFG(sev), 10, 10, 5)
		x += bw + 12
	}
	b.y += 30

	b.text(marginL, "Findings by Category", "Helvetica", "B", 14, colWhite)
	b.y += 20
	b.drawCategoryTable(findings, false)

	b.y += 14
	unique := make(map[string]bool)
	for _, f := range findings {
		unique[f.Title] = true
	}
	note := fmt.Sprintf("%d total findings condensed into %d unique issues in this report.", total, len(unique))
	b.text(marginL, note, "Helvetica", "", 9, colText2)
}

// drawCategoryTable renders the category-by-severity count matrix.
// With grandTotal set a closing TOTAL row sums every column.
func (b *pdfBuilder) drawCategoryTable(findings []model.Finding, grandTotal bool) {
	catCounts := make(map[string]map[model.Severity]int)
	for _, f := range findings {
		cat := checkCategory(f.CheckName)
		if catCounts[cat] == nil {
			catCounts[cat] = make(map[model.Severity]int)
		}
		catCounts[cat][f.Severity]++
	}

	const (
		labelColW = 130.0
		sevColW   = 58.0
		rowH      = 18.0
	)
	totalColX := marginL + labelColW + float64(len(allSeverities))*sevColW

	hdrTop := b.y - 2
	b.fillRect(marginL, hdrTop, b.cw, rowH, colTableHdrBG)
	b.y = hdrTop + 13
	b.text(marginL+5, "Category", "Helvetica", "B", 9, colWhite)
	for i, sev := range allSeverities {
		b.text(marginL+labelColW+float64(i)*sevColW+5, sev.String(), "Helvetica", "B", 7.5, colWhite)
	}
	b.text(totalColX+5, "TOTAL", "Helvetica", "B", 7.5, colWhite)
	b.y = hdrTop + rowH

	rowIdx := 0
	grand := 0
	grandBySev := make(map[model.Severity]int)
	for _, cat := range categoryOrder() {
		counts := catCounts[cat]
		rowTotal := 0
		for _, c := range counts {
			rowTotal += c
		}
		if rowTotal == 0 {
			continue
		}
		grand += rowTotal
		for s, c := range counts {
			grandBySev[s] += c
		}

		rowTop := b.y
		if rowIdx%2 == 0 {
			b.fillRect(marginL, rowTop, b.cw, rowH, colTableAlt)
		}
		b.y = rowTop + 13
		b.text(marginL+5, cat, "Helvetica", "", 9, colText)
		for i, sev := range allSeverities {
			if c := counts[sev]; c > 0 {
				b.text(marginL+labelColW+float64(i)*sevColW+5, fmt.Sprintf("%d", c), "Helvetica", "", 9, severityBG(sev))
			}
		}
		b.text(totalColX+5, fmt.Sprintf("%d", rowTotal), "Helvetica", "B", 9, colWhite)
		b.y = rowTop + rowH
		b.pdf.SetDrawColor(colAccent.r, colAccent.g, colAccent.b)
		b.pdf.SetLineWidth(0.3)
		b.pdf.Line(marginL, b.y, b.pageW-marginR, b.y)
		rowIdx++
	}

	if grandTotal {
		rowTop := b.y
		b.cardRect(marginL, rowTop, b.cw, rowH, colCardBG, colCardBorder, 0.5)
		b.y = rowTop + 13
		b.text(marginL+5, "TOTAL", "Helvetica", "B", 9, colWhite)
		for i, sev := range allSeverities {
			if c := grandBySev[sev]; c > 0 {
				b.text(marginL+labelColW+float64(i)*sevColW+5, fmt.Sprintf("%d", c), "Helvetica", "B", 9, severityBG(sev))
			}
		}
		b.text(totalColX+5, fmt.Sprintf("%d", grand), "Helvetica", "B", 9, colWhite)
		b.y = rowTop + rowH
	}
}

// -- section header ------------------------------------------------------

func (b *pdfBuilder) drawSectionHeader(title string, findingCount, groupCount int, accent rgb) {
	b.ensureSpace(60)
	b.pdf.Bookmark(title, 0, -1)

	const barH = 34.0
	b.fillRect(marginL, b.y-6, b.cw, barH, colSectionBG)
	b.fillRect(marginL, b.y-6, 4, barH, accent)

	b.y += 4
	titleW := b.text(marginL+14, title, "Helvetica", "B", 16, colWhite)

	var countText string
	if findingCount == groupCount {
		noun := "finding"
		if findingCount != 1 {
			noun = "findings"
		}
		countText = fmt.Sprintf("%d %s", findingCount, noun)
	} else {
		countText = fmt.Sprintf("%d findings in %d unique issues", findingCount, groupCount)
	}
	b.badge(marginL+14+titleW+12, b.y, countText, colAccent, colText2, 8, 6, 3)
	b.y += barH - 2
}

// -- full card (CRITICAL / HIGH) -----------------------------------------

func (b *pdfBuilder) drawFullCard(g *GroupedFinding) {
	sevBG := severityBG(g.Severity)
	innerW := b.cw - 28

	titleLines := b.wrap(g.Title, "Helvetica", "B", 11, b.cw-100)
	descLines := b.wrap(g.Description, "Helvetica", "", 9.5, innerW)
	suggLines := b.wrap(g.Suggestion, "Helvetica", "", 9, innerW-16)
	shown := min(len(g.Locations), maxLocsFull)
	locH := locBlockHeight(shown, len(g.Locations) > shown)

	cardH := 16.0 + 14 + float64(len(titleLines))*14 + 2 + float64(len(descLines))*13
	if len(suggLines) > 0 {
		cardH += 4 + 12 + float64(len(suggLines))*12
	}
	cardH += 4 + 11 + locH + 8
	if cardH < 44 {
		cardH = 44
	}
	b.ensureSpace(cardH + 8)

	cardTop := b.y - 4
	cardRight := b.pageW - marginR
	b.cardRect(marginL, cardTop, b.cw, cardH, colCardBG, colCardBorder, 0.4)
	b.fillRect(marginL, cardTop, 4, cardH, sevBG)

	innerLeft := marginL + 14
	b.y = cardTop + 16

	bw := b.badge(innerLeft, b.y, g.Severity.String(), sevBG, severityFG(g.Severity), 7, 5, 2)
	if g.Count() > 1 {
		b.badge(innerLeft+bw+8, b.y, fmt.Sprintf("%d occurrences", g.Count()), colAccent, colText2, 7, 4, 2)
	}
	b.y += 14

	for _, line := range titleLines {
		b.text(innerLeft, line, "Helvetica", "B", 11, colWhite)
		b.y += 14
	}
	b.y += 2

	for _, line := range descLines {
		b.text(innerLeft, line, "Helvetica", "", 9.5, colText)
		b.y += 13
	}

	if len(suggLines) > 0 {
		b.y += 4
		b.text(innerLeft, "Suggestion:", "Helvetica", "B", 8, colSuggestText)
		b.y += 12
		suggH := float64(len(suggLines))*12 + 6
		b.fillRect(innerLeft, b.y-10, cardRight-14-innerLeft, suggH, colSuggestBG)
		for _, line := range suggLines {
			b.text(innerLeft+8, line, "Helvetica", "", 9, colSuggestText)
			b.y += 12
		}
	}

	b.y += 4
	b.text(innerLeft, "Locations:", "Helvetica", "B", 8, colText2)
	b.y += 11
	b.fillRect(innerLeft-4, b.y-9, cardRight-10-(innerLeft-4), locH, colLocBG)
	b.drawLocations(g.Locations, innerLeft, maxLocsFull)

	b.y = cardTop + cardH + 8
}

// -- compact card (MEDIUM) -----------------------------------------------

func (b *pdfBuilder) drawCompactCard(g *GroupedFinding) {
	sevBG := severityBG(g.Severity)
	innerW := b.cw - 24

	titleLines := b.wrap(g.Title, "Helvetica", "B", 10, b.cw-100)
	descLines := b.wrap(g.Description, "Helvetica", "", 9, innerW)
	suggLines := b.wrap(g.Suggestion, "Helvetica", "", 8.5, innerW-16)
	shown := min(len(g.Locations), maxLocsCompact)
	locH := locBlockHeight(shown, len(g.Locations) > shown)

	cardH := 13.0 + 12 + float64(len(titleLines))*13 + 2 + float64(len(descLines))*12
	if len(suggLines) > 0 {
		cardH += 3 + 12 + float64(len(suggLines))*11
	}
	cardH += 3 + 11 + locH + 6
	if cardH < 40 {
		cardH = 40
	}
	b.ensureSpace(cardH + 6)

	cardTop := b.y - 2
	cardRight := b.pageW - marginR
	b.cardRect(marginL, cardTop, b.cw, cardH, colCardBG, colCardBorder, 0.3)
	b.fillRect(marginL, cardTop, 3, cardH, sevBG)

	innerLeft := marginL + 12
	b.y = cardTop + 13

	bw := b.badge(innerLeft, b.y, g.Severity.String(), sevBG, severityFG(g.Severity), 6.5, 4, 2)
	if g.Count() > 1 {
		b.badge(innerLeft+bw+6, b.y, fmt.Sprintf("x%d", g.Count()), colAccent, colText2, 6.5, 3, 2)
	}
	b.y += 12

	for _, line := range titleLines {
		b.text(innerLeft, line, "Helvetica", "B", 10, colWhite)
		b.y += 13
	}
	b.y += 2

	for _, line := range descLines {
		b.text(innerLeft, line, "Helvetica", "", 9, colText)
		b.y += 12
	}

	if len(suggLines) > 0 {
		b.y += 3
		b.text(innerLeft, "Suggestion:", "Helvetica", "B", 8, colSuggestText)
		b.y += 12
		suggH := float64(len(suggLines))*11 + 6
		b.fillRect(innerLeft, b.y-10, cardRight-12-innerLeft, suggH, colSuggestBG)
		for _, line := range suggLines {
			b.text(innerLeft+8, line, "Helvetica", "", 8.5, colSuggestText)
			b.y += 11
		}
	}

	b.y += 3
	b.text(innerLeft, "Locations:", "Helvetica", "B", 8, colText2)
	b.y += 11
	b.fillRect(innerLeft-4, b.y-9, cardRight-10-(innerLeft-4), locH, colLocBG)
	b.drawLocations(g.Locations, innerLeft, maxLocsCompact)

	b.y = cardTop + cardH + 6
}

// -- table rows (LOW / STYLE) --------------------------------------------

func (b *pdfBuilder) drawTableHeader() {
	const rowH = 18.0
	b.ensureSpace(rowH + 30)
	b.fillRect(marginL, b.y-2, b.cw, rowH, colTableHdrBG)
	saveY := b.y
	b.y = saveY + 10
	b.text(marginL+6, "SEV", "Helvetica", "B", 7, colText2)
	b.text(marginL+55, "FINDING", "Helvetica", "B", 7, colText2)
	b.text(b.pageW-marginR-30, "QTY", "Helvetica", "B", 7, colText2)
	b.y = saveY + rowH + 1
}

func (b *pdfBuilder) drawTableRows(groups []*GroupedFinding) {
	if len(groups) == 0 {
		return
	}
	b.drawTableHeader()

	const rowH = 28.0
	for idx, g := range groups {
		title := b.truncate(g.Title, "Helvetica", "B", 8.5, b.cw-120)

		b.ensureSpace(rowH + 2)
		rowTop := b.y - 2
		if idx%2 == 0 {
			b.fillRect(marginL, rowTop, b.cw, rowH, colTableAlt)
		}

		saveY := b.y
		b.badge(marginL+4, saveY+10, g.Severity.String(), severityBG(g.Severity), severityFG(g.Severity), 6, 3, 1.5)
		b.y = saveY + 10
		b.text(marginL+55, title, "Helvetica", "B", 8.5, colText)
		b.text(b.pageW-marginR-25, fmt.Sprintf("%d", g.Count()), "Helvetica", "B", 8.5, colText2)

		b.y = saveY + 20
		b.drawLocationsInline(g.Locations, marginL+55, 3)

		b.y = rowTop + rowH + 1
		b.pdf.SetDrawColor(colAccent.r, colAccent.g, colAccent.b)
		b.pdf.SetLineWidth(0.2)
		b.pdf.Line(marginL, b.y-2, b.pageW-marginR, b.y-2)
	}
}

// drawGroupedFindings dispatches a category's groups to the tier that
// matches their severity: full cards, compact cards, then a table for
// the low-priority rest.
func (b *pdfBuilder) drawGroupedFindings(groups []*GroupedFinding) {
	var full, compact, table []*GroupedFinding
	for _, g := range groups {
		switch g.Severity {
		case model.SeverityCritical, model.SeverityHigh:
			full = append(full, g)
		case model.SeverityMedium:
			compact = append(compact, g)
		default:
			table = append(table, g)
		}
	}
	for _, g := range full {
		b.drawFullCard(g)
	}
	for _, g := range compact {
		b.drawCompactCard(g)
	}
	if len(table) > 0 {
		b.ensureSpace(40)
		b.y += 4
		b.text(marginL, "Low & Style Issues", "Helvetica", "B", 10, colText2)
		b.y += 14
		b.drawTableRows(table)
	}
}

// -- closing summary -----------------------------------------------------

func (b *pdfBuilder) drawSummary(findings []model.Finding) {
	b.pdf.Bookmark("Summary", 0, -1)

	b.y += 10
	b.text(marginL, "Report Summary", "Helvetica", "B", 18, colWhite)
	b.y += 8
	b.rule(1.2)
	b.y += 20

	b.drawCategoryTable(findings, true)

	b.y += 20
	b.text(marginL,
		fmt.Sprintf("Generated by Ren'Py Analyzer on %s", time.Now().Format("2006-01-02 15:04")),
		"Helvetica", "", 8, colText3)
}
