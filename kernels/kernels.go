// Package kernels implements the kernel shapes used to turn distances into
// non-negative voting weights.
//
// A kernel maps a bandwidth-scaled distance u = d/h to a weight. Compactly
// supported kernels integrate to 1 over [-1, 1] and return 0 outside it; the
// normal kernel is unbounded. Asymmetric variants (AKer.*) are the one-sided
// versions renormalized over [0, 1], which is the natural support when u is a
// non-negative distance.
//
// The kernel names mirror the conventional Ker.* naming of the functional
// data analysis literature.
package kernels

import (
	"math"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// Kind enumerates the built-in kernel shapes plus the custom escape hatch.
type Kind int

const (
	// Normal is the Gaussian kernel (unbounded support).
	Normal Kind = iota
	// Cosine is the cosine kernel on [-1, 1].
	Cosine
	// Epanechnikov is the parabolic kernel on [-1, 1].
	Epanechnikov
	// Triangular is the tent kernel on [-1, 1].
	Triangular
	// Quartic is the biweight kernel on [-1, 1].
	Quartic
	// Triweight is the cube-of-parabola kernel on [-1, 1].
	Triweight
	// Uniform is the box kernel on [-1, 1].
	Uniform
	// ANormal is the one-sided Gaussian kernel on [0, inf).
	ANormal
	// ACosine is the one-sided cosine kernel on [0, 1].
	ACosine
	// AEpanechnikov is the one-sided parabolic kernel on [0, 1].
	AEpanechnikov
	// AUniform is the one-sided box kernel on [0, 1].
	AUniform
	// CustomKer applies a user-supplied weight function ("custom.ker").
	CustomKer
)

// Func is a user-supplied kernel function for the custom.ker escape hatch.
// It must return a finite, non-negative weight.
type Func func(u float64) float64

// Kernel is a tagged kernel selection. Construct via the New* constructors
// or ParseKernel.
type Kernel struct {
	Kind Kind
	Fn   Func // custom.ker
}

// NewNormal returns the Gaussian kernel.
func NewNormal() Kernel { return Kernel{Kind: Normal} }

// NewCosine returns the cosine kernel.
func NewCosine() Kernel { return Kernel{Kind: Cosine} }

// NewEpanechnikov returns the Epanechnikov kernel.
func NewEpanechnikov() Kernel { return Kernel{Kind: Epanechnikov} }

// NewTriangular returns the triangular kernel.
func NewTriangular() Kernel { return Kernel{Kind: Triangular} }

// NewQuartic returns the quartic (biweight) kernel.
func NewQuartic() Kernel { return Kernel{Kind: Quartic} }

// NewTriweight returns the triweight kernel.
func NewTriweight() Kernel { return Kernel{Kind: Triweight} }

// NewUniform returns the uniform kernel.
func NewUniform() Kernel { return Kernel{Kind: Uniform} }

// NewCustom returns the custom.ker escape hatch wrapping fn.
func NewCustom(fn Func) Kernel { return Kernel{Kind: CustomKer, Fn: fn} }

var kernelNames = map[string]Kind{
	"Ker.norm":  Normal,
	"Ker.cos":   Cosine,
	"Ker.epa":   Epanechnikov,
	"Ker.tri":   Triangular,
	"Ker.quar":  Quartic,
	"Ker.triw":  Triweight,
	"Ker.unif":  Uniform,
	"AKer.norm": ANormal,
	"AKer.cos":  ACosine,
	"AKer.epa":  AEpanechnikov,
	"AKer.unif": AUniform,
}

// KnownKernels returns the names accepted by ParseKernel, in stable order.
func KnownKernels() []string {
	return []string{
		"Ker.norm", "Ker.cos", "Ker.epa", "Ker.tri", "Ker.quar", "Ker.triw",
		"Ker.unif", "AKer.norm", "AKer.cos", "AKer.epa", "AKer.unif",
	}
}

// ParseKernel resolves a kernel name. The name "custom.ker" is rejected here:
// custom kernels carry a function value and must be built with NewCustom.
func ParseKernel(name string) (Kernel, error) {
	if name == "custom.ker" {
		return Kernel{}, errors.NewValidationError("kernel",
			"custom.ker requires a function; use NewCustom", name)
	}
	kind, ok := kernelNames[name]
	if !ok {
		return Kernel{}, errors.NewUnknownKernelError(name, KnownKernels())
	}
	return Kernel{Kind: kind}, nil
}

// Name returns the registry name of the kernel.
func (k Kernel) Name() string {
	for name, kind := range kernelNames {
		if kind == k.Kind {
			return name
		}
	}
	if k.Kind == CustomKer {
		return "custom.ker"
	}
	return "unknown"
}

// Validate checks the kernel configuration.
func (k Kernel) Validate() error {
	if k.Kind == CustomKer {
		if k.Fn == nil {
			return errors.NewValidationError("kernel", "custom.ker requires a non-nil function", nil)
		}
		return nil
	}
	if _, ok := kernelNames[k.Name()]; !ok {
		return errors.NewUnknownKernelError(k.Name(), KnownKernels())
	}
	return nil
}

// Weight maps a scaled distance u to a non-negative weight.
// Built-in kernels are symmetric in u; distances are non-negative anyway.
func (k Kernel) Weight(u float64) float64 {
	a := math.Abs(u)
	switch k.Kind {
	case Normal:
		return math.Exp(-u*u/2) / math.Sqrt(2*math.Pi)
	case Cosine:
		if a > 1 {
			return 0
		}
		return math.Pi / 4 * math.Cos(math.Pi*u/2)
	case Epanechnikov:
		if a > 1 {
			return 0
		}
		return 0.75 * (1 - u*u)
	case Triangular:
		if a > 1 {
			return 0
		}
		return 1 - a
	case Quartic:
		if a > 1 {
			return 0
		}
		t := 1 - u*u
		return 15.0 / 16.0 * t * t
	case Triweight:
		if a > 1 {
			return 0
		}
		t := 1 - u*u
		return 35.0 / 32.0 * t * t * t
	case Uniform:
		if a > 1 {
			return 0
		}
		return 0.5
	case ANormal:
		if u < 0 {
			return 0
		}
		return 2 * math.Exp(-u*u/2) / math.Sqrt(2*math.Pi)
	case ACosine:
		if u < 0 || u > 1 {
			return 0
		}
		return math.Pi / 2 * math.Cos(math.Pi*u/2)
	case AEpanechnikov:
		if u < 0 || u > 1 {
			return 0
		}
		return 1.5 * (1 - u*u)
	case AUniform:
		if u < 0 || u > 1 {
			return 0
		}
		return 1
	case CustomKer:
		return k.Fn(u)
	default:
		return 0
	}
}
