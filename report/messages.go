package report

import (
	"fmt"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English templates
const (
	msgWithResponse = "API error: “%s” %s. Payload: “%s”. Response: “%s”"
	msgWithPayload  = "API error: “%s” %s. Payload: “%s”"
	msgWithAuthURL  = "API error: \"%s\" %s. AuthURL: \"%s\""
	msgPlain        = "API error: “%s” %s."
)

var supported = []language.Tag{language.English, language.BrazilianPortuguese}

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgWithResponse: msgWithResponse,
		msgWithPayload:  msgWithPayload,
		msgWithAuthURL:  msgWithAuthURL,
		msgPlain:        msgPlain,
	},
	language.BrazilianPortuguese: {
		msgWithResponse: "Erro de API: “%s” %s. Payload: “%s”. Resposta: “%s”",
		msgWithPayload:  "Erro de API: “%s” %s. Payload: “%s”",
		msgWithAuthURL:  "Erro de API: \"%s\" %s. AuthURL: \"%s\"",
		msgPlain:        "Erro de API: “%s” %s.",
	},
}

// Translator renders administrator messages for reports
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// NewTranslator creates a translator for a BCP 47 language tag.
// Unsupported languages fall back to English.
func NewTranslator(lang string) (*Translator, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parsing language %q: %w", lang, err)
	}

	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := cat.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("building message catalog: %w", err)
			}
		}
	}

	_, index, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[index]

	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		tag:     tag,
	}, nil
}

// englishTranslator needs no catalog: the message keys are the English templates
func englishTranslator() *Translator {
	return &Translator{printer: message.NewPrinter(language.English), tag: language.English}
}

// Language returns the matched language
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Render picks the template carrying the most context the failure has
func (t *Translator) Render(d filemaker.ErrorDetail) string {
	switch {
	case d.Response != "":
		return t.printer.Sprintf(msgWithResponse, d.Message, d.Location, d.Payload, d.Response)
	case d.AuthURL != "":
		return t.printer.Sprintf(msgWithAuthURL, d.Message, d.Location, d.AuthURL)
	case d.Payload != "":
		return t.printer.Sprintf(msgWithPayload, d.Message, d.Location, d.Payload)
	default:
		return t.printer.Sprintf(msgPlain, d.Message, d.Location)
	}
}
