package surrogate

import (
	"errors"
	"testing"
)

func TestParseDistribution(t *testing.T) {
	if d, err := ParseDistribution("gaussian"); err != nil || d != Gaussian {
		t.Errorf("ParseDistribution(gaussian) = (%q, %v), want (%q, nil)", d, err, Gaussian)
	}
	if d, err := ParseDistribution("nongaussian"); err != nil || d != NonGaussian {
		t.Errorf("ParseDistribution(nongaussian) = (%q, %v), want (%q, nil)", d, err, NonGaussian)
	}
	if _, err := ParseDistribution("laplace"); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("ParseDistribution(laplace): err = %v, want ErrInvalidDistribution", err)
	}
	if _, err := ParseDistribution(""); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("ParseDistribution(empty): err = %v, want ErrInvalidDistribution", err)
	}
}
