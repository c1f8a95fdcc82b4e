// pkg/server/handlers.go

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/web"
)

// generateInvoiceHandler godoc
// @Summary      Generate an invoice PDF
// @Description  Normalizes the submitted invoice, renders it as a PDF, stores the file in the output directory and returns it as an attachment.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        invoice  body      invoice.Request  true  "Invoice data"
// @Success      200      {file}    file             "PDF document"
// @Failure      400      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /generate-invoice [post]
func (s *Server) generateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	var req invoice.Request
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := decodeJSON(body, &req); err != nil {
		log.Info("rejected malformed body", zap.Error(err))
		writeError(w, r, "invalid JSON body: "+err.Error(), "", http.StatusBadRequest)
		return
	}

	inv, err := s.normalizer.Normalize(req)
	if err != nil {
		var verr *invoice.ValidationError
		if errors.As(err, &verr) {
			log.Info("rejected invoice", zap.String("field", verr.Field), zap.String("reason", verr.Reason))
			writeError(w, r, verr.Error(), verr.Field, http.StatusBadRequest)
			return
		}
		log.Error("normalize failed", zap.Error(err))
		writeError(w, r, "failed to process invoice", "", http.StatusInternalServerError)
		return
	}

	// Render the PDF into a buffer
	var pdfBuffer bytes.Buffer
	if err := s.renderer.Render(inv, &pdfBuffer); err != nil {
		log.Error("render failed", zap.Error(err))
		writeError(w, r, "failed to render invoice", "", http.StatusInternalServerError)
		return
	}

	now := s.normalizer.Now()
	fileName := invoice.FileName(inv.Number, now)
	location, err := s.store.Save(r.Context(), fileName, pdfBuffer.Bytes())
	if err != nil {
		log.Error("store failed", zap.String("file", fileName), zap.Error(err))
		writeError(w, r, "failed to save invoice", "", http.StatusInternalServerError)
		return
	}

	entry := archive.NewEntry(inv, fileName, location, now)
	if err := s.archive.Record(r.Context(), entry); err != nil {
		log.Warn("archive record failed", zap.String("file", fileName), zap.Error(err))
	}

	log.Info("generated invoice",
		zap.String("file", fileName),
		zap.String("location", location),
		zap.Int("items", len(inv.Items)),
		zap.String("total", inv.Total.StringFixed(2)),
	)

	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBuffer.Bytes()); err != nil {
		log.Warn("client went away", zap.String("file", fileName), zap.Error(err))
	}
}

// decodeJSON decodes exactly one JSON value from r. Anything but whitespace
// after it is an error.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	issued := s.normalizer.Now()
	data := web.FormData{
		Endpoint:       "/generate-invoice",
		IssueDate:      issued.Format("2006-01-02"),
		DueDate:        issued.Add(invoice.DefaultPaymentTerm).Format("2006-01-02"),
		DefaultTaxRate: "0.1",
	}

	var page bytes.Buffer
	if err := s.form.Execute(&page, data); err != nil {
		s.requestLogger(r).Error("form template failed", zap.Error(err))
		writeError(w, r, "failed to render form", "", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = page.WriteTo(w)
}

// healthHandler godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /healthz [get]
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
