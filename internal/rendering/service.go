package rendering

import (
	"context"
	"errors"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/sirupsen/logrus"
)

// Loader fetches a stored resume document. It returns nil, nil when the
// document does not exist.
type Loader interface {
	LoadDocument(ctx context.Context, id string) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id string) ([]byte, error)

// LoadDocument calls f.
func (f LoaderFunc) LoadDocument(ctx context.Context, id string) ([]byte, error) {
	return f(ctx, id)
}

// Service renders stored resumes to PDF.
type Service struct {
	loader  Loader
	printer Printer
	log     logrus.FieldLogger
}

// NewService returns a render service.
func NewService(loader Loader, printer Printer, log logrus.FieldLogger) *Service {
	return &Service{
		loader:  loader,
		printer: printer,
		log:     logger.OrDiscard(log).WithField("component", "rendering"),
	}
}

// Render loads the document, normalizes it and prints it in locale.
func (s *Service) Render(ctx context.Context, documentID, locale string) ([]byte, error) {
	data, err := s.loader.LoadDocument(ctx, documentID)
	if err != nil {
		return nil, &RenderError{Message: "failed to load document", Cause: err}
	}
	if data == nil {
		return nil, &NotFoundError{ID: documentID}
	}

	doc, report := resume.Normalize(data)
	report.Log(s.log.WithField("document_id", documentID), "stored resume needed repair")

	html, err := RenderHTML(doc, locale)
	if err != nil {
		return nil, err
	}

	pdf, err := s.printer.PrintPDF(ctx, html)
	if err != nil {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			return nil, err
		}
		return nil, &RenderError{Message: "failed to print PDF", Cause: err}
	}

	s.log.WithFields(logrus.Fields{
		"document_id": documentID,
		"locale":      NormalizeLocale(locale),
		"bytes":       len(pdf),
	}).Info("rendered resume")
	return pdf, nil
}
