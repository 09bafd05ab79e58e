// Package dimen implements SVG/CSS lengths and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/svgtext/core"
)

// Online dimension conversion for print:
// http://www.unitconversion.org/unit_converter/typography-ex.html

// Unit is the unit of an SVG length.
type Unit uint8

// Units known to SVG. User units are CSS pixels at 96 dpi.
const (
	UserUnit Unit = iota // no unit given
	PX
	PT
	PC
	MM
	CM
	IN
	EM
	EX
	Percent
)

// Absolute units in user units (CSS pixels).
const (
	BP = 96.0 / 72.0 // a point is 1/72 inch
	Q  = 96.0 / 25.4 // millimeter
	IP = 96.0        // inch
)

// Stringer implementation.
func (u Unit) String() string {
	switch u {
	case PX:
		return "px"
	case PT:
		return "pt"
	case PC:
		return "pc"
	case MM:
		return "mm"
	case CM:
		return "cm"
	case IN:
		return "in"
	case EM:
		return "em"
	case EX:
		return "ex"
	case Percent:
		return "%"
	}
	return ""
}

// Length is an SVG length, i.e. a number with an optional unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Zero is a length of 0 user units.
var Zero = Length{}

// U creates a length in user units.
func U(v float64) Length {
	return Length{Value: v}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// IsPercentage is true for percentage values.
func (l Length) IsPercentage() bool {
	return l.Unit == Percent
}

// Context holds the reference values needed to resolve relative lengths.
// Reference is the length percentages are taken of, e.g. the viewport width
// for x-values or the length of a path for start offsets.
type Context struct {
	FontSize  float64
	XHeight   float64 // if 0, half of the font size is assumed
	Reference float64
}

// Resolve converts a length to user units.
func (l Length) Resolve(ctx Context) float64 {
	v := l.Value
	switch l.Unit {
	case UserUnit, PX:
		return v
	case PT:
		return v * BP
	case PC:
		return v * 12 * BP
	case MM:
		return v * Q
	case CM:
		return v * 10 * Q
	case IN:
		return v * IP
	case EM:
		return v * ctx.FontSize
	case EX:
		if ctx.XHeight > 0 {
			return v * ctx.XHeight
		}
		return v * ctx.FontSize / 2
	case Percent:
		return v * ctx.Reference / 100
	}
	return v
}

// ---------------------------------------------------------------------------

var lengthPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+\-]?[0-9]+)?)(%|[a-zA-Z]{2})?$`)

// ParseLength parses a string to return a length. Syntax is CSS unit syntax.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	d := lengthPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Zero, core.Error(core.ESYNTAX, "format error parsing length %q", s)
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Zero, core.WrapError(err, core.ESYNTAX, "format error parsing length %q", s)
	}
	l := Length{Value: n}
	if len(d) > 2 {
		switch strings.ToLower(d[2]) {
		case "":
			l.Unit = UserUnit
		case "px":
			l.Unit = PX
		case "pt":
			l.Unit = PT
		case "pc":
			l.Unit = PC
		case "mm":
			l.Unit = MM
		case "cm":
			l.Unit = CM
		case "in":
			l.Unit = IN
		case "em":
			l.Unit = EM
		case "ex":
			l.Unit = EX
		case "%":
			l.Unit = Percent
		default:
			return Zero, core.Error(core.ESYNTAX, "unknown unit in length %q", s)
		}
	}
	return l, nil
}

// ParseLengthList parses a list of lengths, separated by commas and/or white space,
// as used for the SVG positioning attributes x, y, dx and dy.
func ParseLengthList(s string) ([]Length, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, nil
	}
	list := make([]Length, 0, len(fields))
	for _, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, nil
}

// ParseNumberList parses a list of plain numbers, as used for the SVG
// rotate attribute.
func ParseNumberList(s string) ([]float64, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, nil
	}
	list := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, core.WrapError(err, core.ESYNTAX, "format error parsing number %q", f)
		}
		list = append(list, n)
	}
	return list, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// ResolveAll converts a list of lengths to user units.
func ResolveAll(list []Length, ctx Context) []float64 {
	if len(list) == 0 {
		return nil
	}
	r := make([]float64, len(list))
	for i, l := range list {
		r[i] = l.Resolve(ctx)
	}
	return r
}

// Must is a helper for tests and constant tables; it panics on a parse error.
func Must(l Length, err error) Length {
	if err != nil {
		panic(fmt.Sprintf("dimen: %v", err))
	}
	return l
}
