package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/marcelsud/formie-filemaker/config"
	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/forms"
	"github.com/marcelsud/formie-filemaker/payload"
	"github.com/marcelsud/formie-filemaker/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errFailed = errors.New("operation failed, see the error report above")

// submissionFile is the JSON shape accepted by send
type submissionFile struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	FormHandle  string         `json:"formHandle"`
	Title       string         `json:"title"`
	Values      map[string]any `json:"values"`
	DateCreated time.Time      `json:"dateCreated"`
}

// newDispatcher builds a dispatcher whose reports go to stderr only
func newDispatcher(withForms bool) (*filemaker.Dispatcher, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	translator, err := report.NewTranslator(cfg.GetReportLanguage())
	if err != nil {
		return nil, err
	}

	opts := []filemaker.Option{
		filemaker.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		filemaker.WithLogger(logger),
	}
	if withForms {
		path := formsFile
		if path == "" {
			path = cfg.GetFormsFile()
		}
		loader := forms.NewLoader()
		if err := loader.Load(path); err != nil {
			return nil, err
		}
		opts = append(opts, filemaker.WithForms(loader))
	}

	return filemaker.NewDispatcher(cfg.Webhook(), payload.NewBuilder(), report.NewService(nil, translator, logger), opts...), nil
}

func send(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening submission file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var sf submissionFile
	if err := json.NewDecoder(r).Decode(&sf); err != nil {
		return fmt.Errorf("decoding submission file: %w", err)
	}

	d, err := newDispatcher(false)
	if err != nil {
		return err
	}

	ok := d.SendPayload(cmd.Context(), filemaker.Submission{
		ID:         sf.ID,
		FormID:     sf.FormID,
		FormHandle: sf.FormHandle,
		Title:      sf.Title,
		Values:     sf.Values,
		CreatedAt:  sf.DateCreated,
	})
	if !ok {
		return errFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Submission delivered")
	return nil
}

func probe(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher(false)
	if err != nil {
		return err
	}
	if !d.FetchConnection(cmd.Context()) {
		return errFailed
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Connection OK (%s)\n", filemaker.Host(d.Config().WebhookURL))
	return nil
}

func token(cmd *cobra.Command, args []string) error {
	d, err := newDispatcher(false)
	if err != nil {
		return err
	}
	tok, ok := d.GetAuthToken(cmd.Context())
	if !ok {
		return errFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

func settings(cmd *cobra.Command, args []string) error {
	formID, _ := cmd.Flags().GetString("form")

	d, err := newDispatcher(true)
	if err != nil {
		return err
	}
	s := d.FetchFormSettings(cmd.Context(), formID)
	if s.IsEmpty() {
		return errFailed
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"response": s.Response,
		"json":     s.JSON,
	})
}
