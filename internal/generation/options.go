package generation

import "github.com/worksheet-lab/ruiji/internal/models"

// OptionsFromSettings merges per-request overrides with the saved settings.
// The saved API key and model are only used when the call goes to the
// provider the settings were saved for.
func OptionsFromSettings(settings models.Settings, provider, model string) Options {
	opts := Options{
		Provider: ResolveProvider(provider),
		Model:    model,
	}
	if provider == "" && settings.Provider != "" {
		opts.Provider = settings.Provider
	}

	if opts.Provider == ResolveProvider(settings.Provider) {
		opts.APIKey = settings.APIKey
		if opts.Model == "" {
			opts.Model = settings.Model
		}
	}
	return opts
}
