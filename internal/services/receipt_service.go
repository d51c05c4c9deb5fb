package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"society-backend/internal/models"
	"society-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders a PDF receipt for a paid bill.
type ReceiptService struct {
	Bills       BillStore
	Resolver    *FlatResolver
	SocietyName string
}

func NewReceiptService(bills BillStore, resolver *FlatResolver, societyName string) *ReceiptService {
	return &ReceiptService{
		Bills:       bills,
		Resolver:    resolver,
		SocietyName: societyName,
	}
}

// ReceiptPDF returns the receipt for a paid bill. Members only get
// receipts for their own flat; anything else reads as not found.
func (s *ReceiptService) ReceiptPDF(ctx context.Context, principal *models.Principal, billID int) ([]byte, error) {
	bill, err := s.Bills.Get(ctx, billID)
	if err != nil {
		return nil, errors.New("bill not found")
	}

	if !principal.IsAdmin() {
		flat := s.Resolver.Resolve(ctx, principal)
		if flat == "" || bill.FlatNumber != flat {
			return nil, errors.New("bill not found")
		}
	}

	if bill.Status != models.BillStatusPaid {
		return nil, errors.New("receipt available only for paid bills")
	}

	return s.render(bill)
}

func (s *ReceiptService) render(bill *models.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.SocietyName+" - Maintenance Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Receipt "+bill.ReceiptNumber, "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Owner: %s", bill.OwnerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Flat: %s", bill.FlatNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Period: %s %d", bill.Month, bill.Year), "LB", 0, "L", false, 0, "")
	if bill.PaidDate != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Paid: %s", timeutil.FormatIST(*bill.PaidDate, timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 7, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount Received: Rs. %d", bill.Amount), "1", 1, "C", false, 0, "")

	if bill.Remarks != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 6, "Remarks: "+bill.Remarks, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
