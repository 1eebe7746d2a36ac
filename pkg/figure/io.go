package figure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mpld3/matplotlylib/pkg/errors"
)

// Read decodes a JSON figure from r.
//
// The input must be a JSON object with "width", "height", and an "axes"
// array. Read validates the decoded figure with [Validate] so that malformed
// figures fail at the boundary rather than deep inside a renderer.
// Read does not close r.
func Read(r io.Reader) (*Figure, error) {
	var fig Figure
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fig); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode figure")
	}
	if err := Validate(&fig); err != nil {
		return nil, err
	}
	return &fig, nil
}

// ReadFile decodes a JSON figure from the file at path.
func ReadFile(path string) (*Figure, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fig, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fig, nil
}

// Write encodes fig as indented JSON to w.
// The output round-trips through [Read].
func Write(fig *Figure, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	return nil
}

// Marshal encodes fig as compact JSON bytes. The encoding is deterministic
// for a given figure, which makes it suitable for content hashing.
func Marshal(fig *Figure) ([]byte, error) {
	return json.Marshal(fig)
}

// Validate checks structural invariants of a figure:
// positive dimensions, per-axes bounds within [0, 1], and known coordinate
// frames on every positioned artist.
func Validate(fig *Figure) error {
	if fig.Width <= 0 || fig.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFigure, "figure dimensions must be positive (got %gx%g)", fig.Width, fig.Height)
	}
	for i, ax := range fig.Axes {
		if ax == nil {
			return errors.New(errors.ErrCodeInvalidFigure, "axes %d is null", i)
		}
		if err := validateAxes(ax); err != nil {
			return fmt.Errorf("axes %d: %w", i, err)
		}
	}
	return nil
}

func validateAxes(ax *Axes) error {
	if ax.Bounds[2] <= 0 || ax.Bounds[3] <= 0 {
		return errors.New(errors.ErrCodeInvalidFigure, "axes bounds must have positive extent")
	}
	if ax.Bounds[0] < 0 || ax.Bounds[1] < 0 || ax.Bounds[0]+ax.Bounds[2] > 1 || ax.Bounds[1]+ax.Bounds[3] > 1 {
		return errors.New(errors.ErrCodeInvalidFigure, "axes bounds must lie within the figure")
	}
	for i, l := range ax.Lines {
		if err := validateCoords(l.Coordinates); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if len(l.XY) == 0 {
			return errors.New(errors.ErrCodeInvalidFigure, "line %d has no points", i)
		}
	}
	for i, p := range ax.Paths {
		if err := validateCoords(p.Coordinates); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		if len(p.Vertices) < 3 {
			return errors.New(errors.ErrCodeInvalidFigure, "path %d has fewer than 3 vertices", i)
		}
	}
	for i, c := range ax.Collections {
		if err := validateCoords(c.OffsetCoordinates); err != nil {
			return fmt.Errorf("collection %d: %w", i, err)
		}
	}
	for i, txt := range ax.Texts {
		if err := validateCoords(txt.Coordinates); err != nil {
			return fmt.Errorf("text %d: %w", i, err)
		}
		switch txt.Role {
		case "", RoleTitle, RoleXLabel, RoleYLabel:
		default:
			return errors.New(errors.ErrCodeInvalidFigure, "text %d has unknown role %q", i, txt.Role)
		}
	}
	for i, img := range ax.Images {
		if err := validateCoords(img.Coordinates); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
	}
	return nil
}

// validateCoords accepts the empty string, which artists use to default
// to data coordinates.
func validateCoords(coords string) error {
	if coords == "" {
		return nil
	}
	return errors.ValidateCoordinates(coords)
}
