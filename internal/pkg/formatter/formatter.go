package formatter

// baseTitle heads the rendered answers document.
const baseTitle = "Answers:"

// Formatter renders an ordered list of answer lines into a document ready
// to be attached to an email.
type Formatter interface {
	Format(answers []string) ([]byte, error)
	ContentType() string
	FileExtension() string
}
