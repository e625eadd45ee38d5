// Package vast extracts display-ready ad data from raw VAST and VMAP
// documents. Parsing is deliberately lenient: the documents come from an
// external ad server and the console must render whatever it received,
// so a malformed document yields an empty ad list rather than an error.
package vast

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"ad-console/internal/metrics"
)

// Kind classifies a raw ad response document.
type Kind string

const (
	KindVAST Kind = "VAST"
	KindVMAP Kind = "VMAP"
)

// MediaFile is one renderable media entry of an ad. Codec is omitted
// entirely when the attribute was absent.
type MediaFile struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bitrate int    `json:"bitrate"`
	Codec   string `json:"codec,omitempty"`
}

// Ad is the parsed view of a single Ad element. Sequence orders the ad
// within its pod; ties keep document order.
type Ad struct {
	ID            string      `json:"id"`
	Sequence      int         `json:"sequence"`
	Title         string      `json:"title"`
	Duration      string      `json:"duration"`
	CreativeAdID  string      `json:"creativeAdId,omitempty"`
	MediaFiles    []MediaFile `json:"mediaFiles"`
	ClickThrough  string      `json:"clickThrough,omitempty"`
	ImpressionURL string      `json:"impressionUrl,omitempty"`
}

// DetectKind classifies a response document by substring. This is a
// heuristic, not namespace-aware parsing: anything without a VMAP root
// marker counts as VAST.
func DetectKind(doc string) Kind {
	if strings.Contains(doc, "<vmap:VMAP") || strings.Contains(doc, "<VMAP") {
		return KindVMAP
	}
	return KindVAST
}

// Parse extracts every Ad element of the document in document order and
// returns them sorted ascending by sequence. It never fails: a document
// that is not well-formed XML yields an empty list, and the failure is
// reported to the log and the parse-failure counter only.
func Parse(doc string) []Ad {
	root, err := parseTree(doc)
	if err != nil {
		metrics.VASTParseFailures.Inc()
		slog.Warn("vast parse failed", slog.Any("error", err))
		return []Ad{}
	}

	ads := []Ad{}
	for _, el := range root.find("Ad") {
		ad := Ad{
			ID:       el.attr("id"),
			Sequence: 1,
			Title:    el.firstText("AdTitle"),
			Duration: el.firstText("Duration"),
		}
		if seq, err := strconv.Atoi(strings.TrimSpace(el.attr("sequence"))); err == nil {
			ad.Sequence = seq
		}
		ad.ImpressionURL = strings.TrimSpace(el.firstText("Impression"))
		ad.ClickThrough = strings.TrimSpace(el.firstText("ClickThrough"))
		if cr := el.first("Creative"); cr != nil {
			ad.CreativeAdID = cr.attr("adId")
		}

		ad.MediaFiles = []MediaFile{}
		for _, mf := range el.find("MediaFile") {
			url := strings.TrimSpace(mf.text())
			if url == "" {
				continue
			}
			ad.MediaFiles = append(ad.MediaFiles, MediaFile{
				URL:     url,
				Type:    mf.attr("type"),
				Width:   intAttr(mf, "width"),
				Height:  intAttr(mf, "height"),
				Bitrate: intAttr(mf, "bitrate"),
				Codec:   mf.attr("codec"),
			})
		}

		ads = append(ads, ad)
	}

	sort.SliceStable(ads, func(i, j int) bool { return ads[i].Sequence < ads[j].Sequence })
	return ads
}

func intAttr(n *node, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(n.attr(name)))
	if err != nil {
		return 0
	}
	return v
}

// node is one element of the parsed document tree. Names are local names
// so namespaced documents (vmap:VMAP wrapping an inline VAST) resolve
// the same way as plain ones.
type node struct {
	name     string
	attrs    []xml.Attr
	chardata strings.Builder
	children []*node
}

func parseTree(doc string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	root := &node{}
	stack := []*node{root}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.CharData:
			stack[len(stack)-1].chardata.Write(t)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(root.children) == 0 {
		return nil, errors.New("document has no elements")
	}
	return root, nil
}

func (n *node) attr(name string) string {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// find returns all descendants with the given local name, depth-first in
// document order.
func (n *node) find(name string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
		out = append(out, c.find(name)...)
	}
	return out
}

func (n *node) first(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
		if found := c.first(name); found != nil {
			return found
		}
	}
	return nil
}

func (n *node) firstText(name string) string {
	if c := n.first(name); c != nil {
		return c.text()
	}
	return ""
}

// text concatenates the element's own character data with that of all
// descendants, in document order.
func (n *node) text() string {
	if len(n.children) == 0 {
		return n.chardata.String()
	}
	var b strings.Builder
	b.WriteString(n.chardata.String())
	for _, c := range n.children {
		b.WriteString(c.text())
	}
	return b.String()
}
