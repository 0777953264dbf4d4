package records

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

func buildPrescriptionPDF(p *Prescription, doctorName, patientName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Prescription", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PRESCRIPTION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Rx No    : "+p.ID.String())
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued   : "+p.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Patient  : "+safe(patientName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Doctor   : "+safe(doctorName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Medicines:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, m := range p.Medicines {
		line := fmt.Sprintf("%d) %s", i+1, m.Name)
		if m.Dosage != "" {
			line += " - " + m.Dosage
		}
		pdf.MultiCell(0, 6, line, "", "", false)
		if m.Instructions != "" {
			pdf.MultiCell(0, 6, "   "+m.Instructions, "", "", false)
		}
		pdf.Ln(1)
	}

	if p.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Notes:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, p.Notes, "", "", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Generated %s. Valid only with the issuing doctor's signature.",
		time.Now().Format("2006-01-02")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func safe(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
