package catalog

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"
)

// Schema names a catalog endpoint shape.
type Schema string

const (
	// SchemaFlat is /api/streams/flat: one object per stream.
	SchemaFlat Schema = "flat"
	// SchemaGrouped is /api/v1/streams: streams nested under their site.
	SchemaGrouped Schema = "grouped"
)

// Schemas lists the accepted values of catalog.schema.
func Schemas() []Schema {
	return []Schema{SchemaFlat, SchemaGrouped}
}

func (s Schema) Valid() bool {
	return lo.Contains(Schemas(), s)
}

func (s Schema) path() string {
	if s == SchemaGrouped {
		return "/api/v1/streams"
	}
	return "/api/streams/flat"
}

type site struct {
	Name    string `json:"site_name"`
	Streams []struct {
		ID    string `json:"ace_id"`
		Title string `json:"title"`
	} `json:"stream_list"`
}

func (s Schema) decode(r io.Reader) (Catalog, error) {
	if s != SchemaGrouped {
		var cat Catalog
		if err := json.NewDecoder(r).Decode(&cat); err != nil {
			return nil, err
		}
		return cat, nil
	}

	var sites []site
	if err := json.NewDecoder(r).Decode(&sites); err != nil {
		return nil, err
	}

	var cat Catalog
	for _, st := range sites {
		for _, e := range st.Streams {
			cat = append(cat, Stream{ID: e.ID, Title: e.Title, Quality: UnknownQuality, Source: st.Name})
		}
	}
	return cat, nil
}

// UnmarshalJSON accepts both "id" and "ace_id" for the identifier.
func (i *StreamInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    string `json:"id"`
		AceID string `json:"ace_id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.ID = lo.Ternary(raw.ID != "", raw.ID, raw.AceID)
	i.Title = raw.Title
	return nil
}
