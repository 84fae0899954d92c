package registry

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeCatalog renders kinds as a catalog document that DecodeCatalog reads back.
// format is "yaml" or "json".
func EncodeCatalog(kinds []StageKind, format string) ([]byte, error) {
	file := catalogFile{Stages: make([]catalogStage, 0, len(kinds))}
	for _, kind := range kinds {
		st := catalogStage{Name: kind.Name, Description: kind.Description, Role: kind.Role}
		for _, o := range kind.Options {
			opt := catalogOption{
				Name:        o.Name,
				Type:        string(o.Type),
				Description: o.Description,
				Required:    o.Required,
			}
			if o.HasDefault() {
				opt.Default = o.Default
			}
			for _, v := range o.AllowedValues {
				opt.Values = append(opt.Values, v)
			}
			st.Options = append(st.Options, opt)
		}
		file.Stages = append(file.Stages, st)
	}

	switch format {
	case "yaml", "yml":
		return yaml.Marshal(file)
	case "json":
		return json.MarshalIndent(file, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", format)
	}
}
