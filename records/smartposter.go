package records

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"ndefkit/ndef"
	"ndefkit/structfmt"
)

const (
	SmartPosterType = ndef.WellKnownPrefix + "Sp"
	ActionType      = ndef.WellKnownPrefix + "act"
	SizeType        = ndef.WellKnownPrefix + "s"
)

type Action uint8

const (
	ActionDo Action = iota
	ActionSave
	ActionEdit
)

func (a Action) String() string {
	switch a {
	case ActionDo:
		return "do"
	case ActionSave:
		return "save"
	case ActionEdit:
		return "edit"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ActionRecord only has a meaning inside a Smart Poster.
type ActionRecord struct {
	ndef.RecordBase
	Action Action
}

func NewActionRecord(a Action) *ActionRecord {
	return &ActionRecord{
		RecordBase: ndef.NewRecordBase(ActionType),
		Action:     a,
	}
}

func (a *ActionRecord) Payload() ([]byte, error) {
	return structfmt.Pack("B", uint8(a.Action))
}

func actionDescriptor() *ndef.Descriptor {
	return &ndef.Descriptor{
		MinPayloadLen: 1,
		MaxPayloadLen: 1,
		Decode: func(payload []byte, opts *ndef.Options) (ndef.Record, error) {
			var a Action
			if err := structfmt.Scan("B", payload, &a); err != nil {
				return nil, err
			}
			return NewActionRecord(a), nil
		},
	}
}

// SizeRecord holds the size in octets of the resource a Smart Poster points
// to.
type SizeRecord struct {
	ndef.RecordBase
	Size uint32
}

func NewSizeRecord(size uint32) *SizeRecord {
	return &SizeRecord{
		RecordBase: ndef.NewRecordBase(SizeType),
		Size:       size,
	}
}

func (s *SizeRecord) Payload() ([]byte, error) {
	return structfmt.Pack("I", s.Size)
}

func sizeDescriptor() *ndef.Descriptor {
	return &ndef.Descriptor{
		MinPayloadLen: 4,
		MaxPayloadLen: 4,
		Decode: func(payload []byte, opts *ndef.Options) (ndef.Record, error) {
			var size uint32
			if err := structfmt.Scan("I", payload, &size); err != nil {
				return nil, err
			}
			return NewSizeRecord(size), nil
		},
	}
}

// SmartPosterRecord is a URI with optional titles, a recommended action and
// the size of the referenced resource. Its payload is itself a message.
// Records of other types found in that message are kept in Extra and encoded
// after the known ones.
type SmartPosterRecord struct {
	ndef.RecordBase
	URI    string
	Titles []*TextRecord
	Action *Action
	Size   *uint32
	Extra  []ndef.Record
}

var _ ndef.Record = (*SmartPosterRecord)(nil)

func NewSmartPosterRecord(uri string) *SmartPosterRecord {
	return &SmartPosterRecord{
		RecordBase: ndef.NewRecordBase(SmartPosterType),
		URI:        uri,
	}
}

func (s *SmartPosterRecord) AddTitle(text string, language string) {
	s.Titles = append(s.Titles, NewTextRecord(text, language))
}

// Title returns the title for language, or the first title if none matches.
func (s *SmartPosterRecord) Title(language string) string {
	for _, t := range s.Titles {
		if strings.EqualFold(t.Language, language) {
			return t.Text
		}
	}
	if len(s.Titles) > 0 {
		return s.Titles[0].Text
	}
	return ""
}

func (s *SmartPosterRecord) SetAction(a Action) {
	s.Action = &a
}

func (s *SmartPosterRecord) SetSize(size uint32) {
	s.Size = &size
}

func (s *SmartPosterRecord) Payload() ([]byte, error) {
	recs := []ndef.Record{NewURIRecord(s.URI)}
	for _, t := range s.Titles {
		recs = append(recs, t)
	}
	if s.Action != nil {
		recs = append(recs, NewActionRecord(*s.Action))
	}
	if s.Size != nil {
		recs = append(recs, NewSizeRecord(*s.Size))
	}
	recs = append(recs, s.Extra...)
	return ndef.EncodeMessage(recs, nil)
}

func (s *SmartPosterRecord) String() string {
	return fmt.Sprintf("Smart Poster '%s' (%d titles)", s.URI, len(s.Titles))
}

func smartPosterDescriptor(nested *ndef.Registry) *ndef.Descriptor {
	return &ndef.Descriptor{
		Decode: func(payload []byte, opts *ndef.Options) (ndef.Record, error) {
			return decodeSmartPoster(payload, opts.WithRegistry(nested))
		},
	}
}

func decodeSmartPoster(payload []byte, opts *ndef.Options) (ndef.Record, error) {
	recs, err := ndef.DecodeMessage(payload, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding nested message")
	}

	sp := NewSmartPosterRecord("")
	var uris int
	for _, rec := range recs {
		switch r := rec.(type) {
		case *URIRecord:
			sp.URI = r.URI
			uris++
		case *TextRecord:
			sp.Titles = append(sp.Titles, r)
		case *ActionRecord:
			sp.SetAction(r.Action)
		case *SizeRecord:
			sp.SetSize(r.Size)
		default:
			sp.Extra = append(sp.Extra, rec)
		}
	}
	if uris != 1 {
		return nil, errors.Errorf("smart poster has %d URI records, want 1", uris)
	}
	return sp, nil
}
