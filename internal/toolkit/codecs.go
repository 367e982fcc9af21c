package toolkit

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned by codecs for lines they cannot decode.
var ErrMalformedLine = errors.New("malformed line")

// VCFCodec decodes the fixed columns of VCF records.
type VCFCodec struct{}

// Extension implements FeatureCodec.
func (VCFCodec) Extension() string { return ".vcf" }

// CanDecode implements FeatureCodec.
func (c VCFCodec) CanDecode(path string) bool {
	return strings.HasSuffix(path, c.Extension()) || strings.HasSuffix(path, c.Extension()+".gz")
}

// Decode implements FeatureCodec.
func (VCFCodec) Decode(line string) (Feature, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 5 {
		return Feature{}, fmt.Errorf("%w: vcf needs 5 columns, got %d", ErrMalformedLine, len(cols))
	}
	pos, err := strconv.Atoi(cols[1])
	if err != nil {
		return Feature{}, fmt.Errorf("%w: position %q", ErrMalformedLine, cols[1])
	}
	return Feature{Contig: cols[0], Start: pos, End: pos + len(cols[3]) - 1, Name: cols[2]}, nil
}

// BEDCodec decodes BED intervals. BED starts are zero based; decoded
// features are one based.
type BEDCodec struct{}

// Extension implements FeatureCodec.
func (BEDCodec) Extension() string { return ".bed" }

// CanDecode implements FeatureCodec.
func (c BEDCodec) CanDecode(path string) bool { return strings.HasSuffix(path, c.Extension()) }

// Decode implements FeatureCodec.
func (BEDCodec) Decode(line string) (Feature, error) {
	cols := strings.Fields(line)
	if len(cols) < 3 {
		return Feature{}, fmt.Errorf("%w: bed needs 3 columns, got %d", ErrMalformedLine, len(cols))
	}
	start, err := strconv.Atoi(cols[1])
	if err != nil {
		return Feature{}, fmt.Errorf("%w: start %q", ErrMalformedLine, cols[1])
	}
	end, err := strconv.Atoi(cols[2])
	if err != nil {
		return Feature{}, fmt.Errorf("%w: end %q", ErrMalformedLine, cols[2])
	}
	f := Feature{Contig: cols[0], Start: start + 1, End: end}
	if len(cols) > 3 {
		f.Name = cols[3]
	}
	return f, nil
}

// ErrNoHTSLib is returned when BAM support is requested from a build that
// does not link the htslib bridge.
var ErrNoHTSLib = errors.New("htslib bridge not linked")

// htslib is set with -ldflags "-X .../internal/toolkit.htslib=linked" by
// builds that carry the native BAM reader.
var htslib string

// BAMCodec decodes binary alignment files through the htslib bridge. It is
// registered lazily and only resolves in builds that link the bridge.
type BAMCodec struct{}

// Extension implements FeatureCodec.
func (BAMCodec) Extension() string { return ".bam" }

// CanDecode implements FeatureCodec.
func (c BAMCodec) CanDecode(path string) bool { return strings.HasSuffix(path, c.Extension()) }

// Decode implements FeatureCodec. BAM is binary, so decoding goes through the
// bridge rather than a text line.
func (BAMCodec) Decode(string) (Feature, error) {
	return Feature{}, ErrNoHTSLib
}

func loadBAMCodec() (reflect.Type, error) {
	if htslib != "linked" {
		return nil, ErrNoHTSLib
	}
	return reflect.TypeFor[BAMCodec](), nil
}
