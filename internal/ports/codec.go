package ports

import "folio/internal/domain"

// DocumentDecoder parses an external representation of the portfolio
// (data.js, JSON, YAML). Malformed input returns an error and no document.
type DocumentDecoder interface {
	Decode(data []byte) (*domain.Portfolio, error)
}

// DocumentEncoder writes the portfolio in an external representation
type DocumentEncoder interface {
	Encode(p *domain.Portfolio) ([]byte, error)
}
