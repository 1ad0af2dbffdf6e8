package domain

// ConversionRequest is a numeral typed by the user together with the radix it
// is written in.
type ConversionRequest struct {
	Input       string
	SourceRadix Radix
}

// ConversionResult holds one value rendered in every supported radix. The
// zero value is the invalid result.
type ConversionResult struct {
	Binary      string `json:"binary"`
	Decimal     string `json:"decimal"`
	Octal       string `json:"octal"`
	Hexadecimal string `json:"hexadecimal"`
	BitCount    int    `json:"bits"`
	IsValid     bool   `json:"isValid"`
}

// Field returns the representation of the value in the given radix.
func (r ConversionResult) Field(radix Radix) string {
	switch radix {
	case RadixBinary:
		return r.Binary
	case RadixOctal:
		return r.Octal
	case RadixDecimal:
		return r.Decimal
	case RadixHexadecimal:
		return r.Hexadecimal
	default:
		return ""
	}
}

// AnalyzeRequest is the numeric variant of the assistant request: the prompt
// carries the numeral and the platform names its radix.
type AnalyzeRequest struct {
	Prompt   string
	Platform string
}

// ContentStats summarises a piece of text.
type ContentStats struct {
	Characters        int    `json:"characters"`
	Words             int    `json:"words"`
	EstimatedReadTime string `json:"estimatedReadTime"`
}

// AnalysisStats extends ContentStats with the bit count of the analysed value.
type AnalysisStats struct {
	ContentStats
	Bits int `json:"bits"`
}

// AnalyzeResponse is returned by both the CLI analyze command and the HTTP
// endpoint.
type AnalyzeResponse struct {
	Response string           `json:"response"`
	Stats    AnalysisStats    `json:"stats"`
	Result   ConversionResult `json:"result"`
	Radix    Radix            `json:"-"`
}
