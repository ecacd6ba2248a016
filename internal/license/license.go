// Package license reads the engine license file and decides whether it is
// usable.
package license

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Product is the licensed engine edition.
type Product int

const (
	ProductUnknown Product = iota - 1
	ProductSQP
	ProductSQPPlus
	ProductSQM
	ProductSQAll
)

var productNames = map[Product]string{
	ProductSQP:     "SQP",
	ProductSQPPlus: "SQPPlus",
	ProductSQM:     "SQM",
	ProductSQAll:   "SQAll",
}

func (p Product) String() string {
	if s, ok := productNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseProduct maps a product name (case-insensitive) to a Product.
func ParseProduct(s string) Product {
	for p, name := range productNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return p
		}
	}
	return ProductUnknown
}

// ErrNoLicense indicates that no license file exists at the configured path.
var ErrNoLicense = errors.New("license: no license file")

// DateLayout is the layout of the expires field.
const DateLayout = "2006-01-02"

// License is a parsed license file.
type License struct {
	Licensee string
	Product  Product
	// Expires is the last day the license is valid, in UTC.
	Expires time.Time
}

type fileLicense struct {
	Licensee string `yaml:"licensee"`
	Product  string `yaml:"product"`
	Expires  string `yaml:"expires"`
}

// Load reads the license file at path.
func Load(path string) (*License, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoLicense, path)
		}
		return nil, fmt.Errorf("cannot read license %s: %w", path, err)
	}
	var fl fileLicense
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	exp, err := time.Parse(DateLayout, strings.TrimSpace(fl.Expires))
	if err != nil {
		return nil, fmt.Errorf("invalid expires date in %s: %w", path, err)
	}
	return &License{
		Licensee: fl.Licensee,
		Product:  ParseProduct(fl.Product),
		Expires:  exp,
	}, nil
}

// Valid reports whether the license names a known product and has not
// expired at now. The expiry day itself is still valid.
func (l *License) Valid(now time.Time) bool {
	if l == nil || l.Product == ProductUnknown {
		return false
	}
	return !now.UTC().After(l.Expires.Add(24*time.Hour - time.Nanosecond))
}

// ExpireDate formats the expiry date.
func (l *License) ExpireDate() string {
	return l.Expires.Format(DateLayout)
}

// Check loads the license at path and returns an error unless it is valid at now.
func Check(path string, now time.Time) (*License, error) {
	l, err := Load(path)
	if err != nil {
		return nil, err
	}
	if !l.Valid(now) {
		return l, fmt.Errorf("license %s is not valid (product %s, expires %s)", path, l.Product, l.ExpireDate())
	}
	return l, nil
}
