package gravity

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/geoharm/internal/legendre"
)

const (
	endOfHead          = "end_of_head"
	gravityFieldMarker = "gravity_field"
)

var fortranExp = strings.NewReplacer("D", "E", "d", "e")

// Load reads an ICGEM gfc file. Files ending in .gz are decompressed.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gravity: %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return Parse(r)
}

// ParseBytes parses an in-memory gfc file.
func ParseBytes(data []byte) (*Model, error) {
	return Parse(bytes.NewReader(data))
}

type header struct {
	productType string
	name        string
	mu, r0      float64
	nMax        int
	norm        legendre.Normalization
	tideSystem  string
	errors      string
	seen        map[string]bool
}

// Parse reads a gfc stream: header lines "key value" up to end_of_head,
// then rows "gfc n m C S [sigmaC sigmaS]". On failure the error is a
// *ParseError and no model is returned.
func Parse(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	h, line, err := parseHeader(sc)
	if err != nil {
		return nil, err
	}

	m := newModel(Meta{
		Name:        h.name,
		ProductType: h.productType,
		Mu:          h.mu,
		R0:          h.r0,
		NMax:        h.nMax,
		Norm:        h.norm,
		TideSystem:  h.tideSystem,
		Errors:      h.errors,
	})
	m.c.Set(0, 0, 1)

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		n, ord, c, s, err := parseRow(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if n > h.nMax || ord > n {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: n=%d m=%d max_degree=%d", ErrIndexRange, n, ord, h.nMax)}
		}
		m.c.Set(n, ord, c)
		m.s.Set(n, ord, s)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: line, Err: err}
	}
	return m, nil
}

func parseHeader(sc *bufio.Scanner) (header, int, error) {
	h := header{seen: make(map[string]bool)}
	line := 0
	ended := false

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := strings.ToLower(fields[0])
		if key == endOfHead {
			ended = true
			break
		}
		if len(fields) < 2 {
			continue
		}
		val := fields[1]

		var err error
		switch key {
		case "product_type":
			h.productType = val
		case "modelname":
			h.name = strings.Join(fields[1:], " ")
		case "earth_gravity_constant":
			h.mu, err = parseFloat(val)
		case "radius":
			h.r0, err = parseFloat(val)
		case "max_degree":
			h.nMax, err = strconv.Atoi(val)
		case "norm":
			h.norm, err = legendre.ParseNormalization(val)
			if err != nil {
				err = fmt.Errorf("%w: %s", ErrNormalization, val)
			}
		case "tide_system":
			h.tideSystem = val
		case "errors":
			h.errors = val
		default:
			continue
		}
		if err != nil {
			return h, line, &ParseError{Line: line, Field: key, Err: wrapValue(err)}
		}
		h.seen[key] = true
	}
	if err := sc.Err(); err != nil {
		return h, line, &ParseError{Line: line, Err: err}
	}
	if !ended {
		return h, line, &ParseError{Line: line, Err: ErrNoHeaderEnd}
	}

	if h.seen["product_type"] && !strings.EqualFold(h.productType, gravityFieldMarker) {
		return h, line, &ParseError{Field: "product_type", Err: fmt.Errorf("%w: %q", ErrProductType, h.productType)}
	}
	for _, key := range []string{"modelname", "earth_gravity_constant", "radius", "max_degree"} {
		if !h.seen[key] {
			return h, line, &ParseError{Field: key, Err: ErrMissingField}
		}
	}
	switch {
	case !(h.mu > 0):
		return h, line, &ParseError{Field: "earth_gravity_constant", Err: fmt.Errorf("%w: %g", ErrBadValue, h.mu)}
	case !(h.r0 > 0):
		return h, line, &ParseError{Field: "radius", Err: fmt.Errorf("%w: %g", ErrBadValue, h.r0)}
	case h.nMax < 0 || h.nMax > MaxDegree:
		return h, line, &ParseError{Field: "max_degree", Err: fmt.Errorf("%w: %d outside [0, %d]", ErrBadValue, h.nMax, MaxDegree)}
	}
	return h, line, nil
}

func wrapValue(err error) error {
	if _, ok := err.(*strconv.NumError); ok {
		return fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return err
}

// parseRow accepts "gfc n m C S ...", "gfct n m C S ..." or the bare
// numeric form "n m C S ...".
func parseRow(fields []string) (n, m int, c, s float64, err error) {
	switch strings.ToLower(fields[0]) {
	case "gfc", "gfct":
		fields = fields[1:]
	default:
		if _, convErr := strconv.Atoi(fields[0]); convErr != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: unsupported keyword %q", ErrMalformedRow, fields[0])
		}
	}
	if len(fields) < 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: expected n m C S, got %d columns", ErrMalformedRow, len(fields))
	}

	if n, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: degree %q", ErrMalformedRow, fields[0])
	}
	if m, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: order %q", ErrMalformedRow, fields[1])
	}
	if n < 0 || m < 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: n=%d m=%d", ErrIndexRange, n, m)
	}
	if c, err = parseFloat(fields[2]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: C %q", ErrMalformedRow, fields[2])
	}
	if s, err = parseFloat(fields[3]); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: S %q", ErrMalformedRow, fields[3])
	}
	return n, m, c, s, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(fortranExp.Replace(s), 64)
}
