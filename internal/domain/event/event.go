// Package event decomposes raw event labels like "100 FR SCY" into
// distance, stroke, and course facets.
//
// Parsing never fails: a malformed label degrades to an all-Unknown
// descriptor so that one bad row cannot take down a whole report. The
// classifier and filters downstream tolerate partial descriptors.
package event

import (
	"strconv"
	"strings"
)

// Stroke is the swim stroke of an event.
type Stroke string

// Recognized strokes.
const (
	Freestyle     Stroke = "Freestyle"
	Backstroke    Stroke = "Backstroke"
	Breaststroke  Stroke = "Breaststroke"
	Butterfly     Stroke = "Butterfly"
	IM            Stroke = "IM"
	Relay         Stroke = "Relay"
	UnknownStroke Stroke = "Unknown"
)

// Course is the pool configuration a time was recorded in. Times are not
// comparable across courses.
type Course string

// Recognized course types.
const (
	SCY Course = "SCY" // short course yards
	SCM Course = "SCM" // short course meters
	LCM Course = "LCM" // long course meters
)

// strokeCodes maps the results site's two-letter codes to strokes.
var strokeCodes = map[string]Stroke{
	"FR": Freestyle,
	"BK": Backstroke,
	"BR": Breaststroke,
	"FL": Butterfly,
	"IM": IM,
}

// Descriptor is the decomposed form of an event label. Distance 0 means
// the distance could not be determined.
type Descriptor struct {
	Distance int    `json:"distance"`
	Stroke   Stroke `json:"stroke"`
	Course   Course `json:"course"`
}

// Parse derives a Descriptor from a raw event label.
//
// Token 0 is the distance when fully numeric; token 1 is looked up in the
// stroke code table. A "Relay" substring forces the Relay stroke because
// relay labels use compound naming the token scheme cannot parse. Course is
// found by substring anywhere in the label, defaulting to SCY.
func Parse(label string) Descriptor {
	d := Descriptor{Stroke: UnknownStroke, Course: SCY}

	tokens := strings.Fields(label)
	if len(tokens) > 0 {
		if n, err := strconv.Atoi(tokens[0]); err == nil && n > 0 {
			d.Distance = n
		}
	}
	if len(tokens) > 1 {
		if s, ok := strokeCodes[strings.ToUpper(tokens[1])]; ok {
			d.Stroke = s
		}
	}
	if strings.Contains(strings.ToLower(label), "relay") {
		d.Stroke = Relay
	}

	switch {
	case strings.Contains(label, string(SCM)):
		d.Course = SCM
	case strings.Contains(label, string(LCM)):
		d.Course = LCM
	case strings.Contains(label, string(SCY)):
		d.Course = SCY
	}
	return d
}
