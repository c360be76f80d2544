// Package document renders the PDFs sent to users and admins.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"sportshub/internal/domain"
)

const ContentType = "application/pdf"

// dateLayout matches how dates are printed everywhere in the documents.
const dateLayout = "Mon Jan 02 2006"

type Renderer struct {
	dir string
	now func() time.Time
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir, now: time.Now}
}

// BookingReceipt renders the receipt e-mailed when a booking is approved.
func (r *Renderer) BookingReceipt(b domain.Booking, owner domain.UserSummary) (string, error) {
	pdf, tr := newDocument()
	header(pdf, tr, "Booking Receipt")

	lines(pdf, tr,
		"Name: "+owner.Username,
		"Email: "+owner.Email,
		"Category: "+b.Category,
		"Date: "+b.BookingDate.UTC().Format(dateLayout),
		"Time: "+b.BookingTime,
		"Quantity: "+strconv.Itoa(b.Quantity),
		"Status: "+string(b.Status),
		"Payment: "+string(b.PaymentStatus),
	)

	return r.write(pdf, fmt.Sprintf("%s_booking_%d.pdf", owner.Username, b.ID))
}

// RegistrationDetails renders the summary attached to the welcome e-mail.
func (r *Renderer) RegistrationDetails(u domain.User) (string, error) {
	pdf, tr := newDocument()
	header(pdf, tr, "User Registration Details")

	var address string
	if u.Details != nil {
		address = strings.Join([]string{u.Details.AddressLine1, u.Details.AddressLine2, u.Details.AddressLine3}, ", ")
	}

	lines(pdf, tr,
		"Username: "+u.Username,
		"Email: "+u.Email,
		"Phone: "+u.Phone,
		"Role: "+string(u.Role),
		"Address: "+address,
	)

	return r.write(pdf, u.Username+"_details.pdf")
}

var reportColumns = []string{"User", "Email", "Category", "Date", "Time", "Qty", "Status", "Payment"}

// BookingReport renders the admin report. An empty status means all bookings.
func (r *Renderer) BookingReport(status string, bookings []domain.Booking) (string, error) {
	pdf, tr := newDocument()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr("Full Booking Report"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("%s Bookings (%d)", sectionTitle(status), len(bookings))))
	pdf.Ln(12)

	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		username, email := "N/A", "N/A"
		if b.User != nil {
			username, email = b.User.Username, b.User.Email
		}
		rows = append(rows, []string{
			username,
			email,
			b.Category,
			b.BookingDate.UTC().Format(dateLayout),
			b.BookingTime,
			strconv.Itoa(b.Quantity),
			string(b.Status),
			string(b.PaymentStatus),
		})
	}
	table(pdf, tr, reportColumns, rows)

	name := status
	if name == "" {
		name = "all"
	}
	return r.write(pdf, fmt.Sprintf("Booking_Report_%s_%d.pdf", name, r.now().UnixMilli()))
}

var userColumns = []string{"Username", "Email", "Phone", "Role", "Address"}

// UserList renders every registered user.
func (r *Renderer) UserList(users []domain.User) (string, error) {
	pdf, tr := newDocument()
	header(pdf, tr, fmt.Sprintf("Registered Users (%d)", len(users)))

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		var address string
		if u.Details != nil {
			address = strings.Join(nonEmpty(u.Details.AddressLine1, u.Details.AddressLine2, u.Details.AddressLine3), ", ")
		}
		rows = append(rows, []string{u.Username, u.Email, u.Phone, string(u.Role), address})
	}
	table(pdf, tr, userColumns, rows)

	return r.write(pdf, "registered_users.pdf")
}

func (r *Renderer) write(pdf *fpdf.Fpdf, name string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}
	path := filepath.Join(r.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

func newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func header(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)
}

func lines(pdf *fpdf.Fpdf, tr func(string) string, text ...string) {
	pdf.SetFont("Helvetica", "", 12)
	for _, t := range text {
		pdf.Cell(0, 8, tr(t))
		pdf.Ln(8)
	}
}

// table splits the printable width evenly across columns, repeating the header on page breaks.
func table(pdf *fpdf.Fpdf, tr func(string) string, columns []string, rows [][]string) {
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(columns))

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range columns {
			pdf.CellFormat(colW, 7, tr(c), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7)
	}

	drawHeader()
	for _, row := range rows {
		if pdf.GetY()+6 > pageH-bottom {
			pdf.AddPage()
			drawHeader()
		}
		for _, cell := range row {
			pdf.CellFormat(colW, 6, fit(pdf, tr(cell), colW-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fit truncates s so it renders inside width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func sectionTitle(status string) string {
	if status == "" {
		return "All"
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
