package processor

// LibMetadata represents the metadata of a recipe library member.
type LibMetadata struct {
	Name        string `json:"name"         yaml:"name"`         // The name of the library member
	DisplayName string `json:"display_name" yaml:"display_name"` // The display name of the library member
	Description string `json:"description"  yaml:"description"`  // The description of the library member
	// The dependencies of the library member, either registry path + ref or a custom go-getter URL
	Dependencies []LibMetadataDependency `json:"dependencies" yaml:"dependencies"`
	// The relative path to the library member within the recipe registry, e.g. "community/cran"
	Path string `json:"path" yaml:"path"`
}

// LibMetadataDependency represents a dependency of a library member.
// Use either Path + Ref, or CustomURL.
type LibMetadataDependency struct {
	// The relative path to the library member within the recipe registry, e.g. "community/cran"
	Path string `json:"path"       yaml:"path"`
	Ref  string `json:"ref"        yaml:"ref"` // The tag of the library member, e.g. "2024.03.0"
	// The custom URL (go-getter string) of the library member, used when the member is not in the recipe registry
	CustomURL string `json:"custom_url" yaml:"custom_url"`
}
