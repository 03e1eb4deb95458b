// Package profile loads the optional launch profile file.
//
// A profile overrides the launcher's built-in defaults: which venv
// directory to activate, which runner to invoke, and which entry point
// to run. Every field is optional and the zero profile resolves to the
// classic sequence — activate ./venv, run `streamlit run
// src/main_app.py` — so a directory with no profile file behaves
// exactly like the original launcher script.
//
// Two formats are accepted, tried in a fixed order within the launch
// directory: JSONC (pylaunch.jsonc / pylaunch.json, comments and
// trailing commas allowed, stripped with github.com/tidwall/jsonc) and
// YAML (pylaunch.yaml / pylaunch.yml, parsed with gopkg.in/yaml.v3).
package profile
