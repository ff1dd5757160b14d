package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.Prompt != "Enter a command: " {
		t.Errorf("default prompt = %q, want %q", cfg.Session.Prompt, "Enter a command: ")
	}
	if cfg.Session.Greeting != "Welcome to the assistant bot!" {
		t.Errorf("default greeting = %q, want %q", cfg.Session.Greeting, "Welcome to the assistant bot!")
	}
	if cfg.Session.Farewell != "Goodbye!" {
		t.Errorf("default farewell = %q, want %q", cfg.Session.Farewell, "Goodbye!")
	}
	if cfg.Session.Plain {
		t.Error("default plain = true, want false")
	}
	if cfg.Book.WindowDays != 7 {
		t.Errorf("default window days = %d, want 7", cfg.Book.WindowDays)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rolodex.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
session:
  prompt: "> "
  plain: true
book:
  window_days: 14
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Prompt != "> " {
		t.Errorf("prompt = %q, want %q", cfg.Session.Prompt, "> ")
	}
	if !cfg.Session.Plain {
		t.Error("plain = false, want true")
	}
	if cfg.Book.WindowDays != 14 {
		t.Errorf("window days = %d, want 14", cfg.Book.WindowDays)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/rolodex.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rolodex.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rolodex.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
session:
  greeting: "Hi there!"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Greeting != "Hi there!" {
		t.Errorf("greeting = %q, want %q", cfg.Session.Greeting, "Hi there!")
	}
	// Unset fields should retain defaults.
	if cfg.Session.Prompt != "Enter a command: " {
		t.Errorf("prompt = %q, want default", cfg.Session.Prompt)
	}
	if cfg.Book.WindowDays != 7 {
		t.Errorf("window days = %d, want default 7", cfg.Book.WindowDays)
	}
}

func TestLoad_LayeredPriority(t *testing.T) {
	// Setup: user config sets prompt, project config overrides window days.
	userDir := t.TempDir()
	projectDir := t.TempDir()

	userCfg := filepath.Join(userDir, "rolodex.yaml")
	if err := os.WriteFile(userCfg, []byte(`
session:
  prompt: "user> "
book:
  window_days: 3
`), 0o644); err != nil {
		t.Fatal(err)
	}

	projectCfg := filepath.Join(projectDir, "rolodex.yaml")
	if err := os.WriteFile(projectCfg, []byte(`
book:
  window_days: 21
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Prompt from user config (project doesn't set it).
	if cfg.Session.Prompt != "user> " {
		t.Errorf("prompt = %q, want %q", cfg.Session.Prompt, "user> ")
	}
	// Window days from project config (overrides user).
	if cfg.Book.WindowDays != 21 {
		t.Errorf("window days = %d, want 21", cfg.Book.WindowDays)
	}
	// Farewell retains default when neither layer sets it.
	if cfg.Session.Farewell != "Goodbye!" {
		t.Errorf("farewell = %q, want default %q", cfg.Session.Farewell, "Goodbye!")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "ROLODEX_PROMPT overrides prompt",
			envs: map[string]string{"ROLODEX_PROMPT": ":: "},
			check: func(t *testing.T, c Config) {
				if c.Session.Prompt != ":: " {
					t.Errorf("prompt = %q, want %q", c.Session.Prompt, ":: ")
				}
			},
		},
		{
			name: "ROLODEX_PLAIN overrides plain",
			envs: map[string]string{"ROLODEX_PLAIN": "true"},
			check: func(t *testing.T, c Config) {
				if !c.Session.Plain {
					t.Error("plain = false, want true")
				}
			},
		},
		{
			name: "ROLODEX_WINDOW_DAYS overrides window",
			envs: map[string]string{"ROLODEX_WINDOW_DAYS": "14"},
			check: func(t *testing.T, c Config) {
				if c.Book.WindowDays != 14 {
					t.Errorf("window days = %d, want 14", c.Book.WindowDays)
				}
			},
		},
		{
			name:    "invalid ROLODEX_PLAIN returns error",
			envs:    map[string]string{"ROLODEX_PLAIN": "notabool"},
			wantErr: true,
		},
		{
			name:    "invalid ROLODEX_WINDOW_DAYS returns error",
			envs:    map[string]string{"ROLODEX_WINDOW_DAYS": "soon"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rolodex.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
session:
  promt: "> "
`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() should return error for unknown field 'promt'")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty prompt",
			modify:  func(c *Config) { c.Session.Prompt = "" },
			wantErr: true,
		},
		{
			name:    "empty greeting",
			modify:  func(c *Config) { c.Session.Greeting = "" },
			wantErr: true,
		},
		{
			name:    "empty farewell",
			modify:  func(c *Config) { c.Session.Farewell = "" },
			wantErr: true,
		},
		{
			name:    "zero window days",
			modify:  func(c *Config) { c.Book.WindowDays = 0 },
			wantErr: true,
		},
		{
			name:    "negative window days",
			modify:  func(c *Config) { c.Book.WindowDays = -7 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rolodex.yaml")
	if err := os.WriteFile(cfgPath, []byte("# just a comment\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}
