package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"c4kit/internal/errors"
	"c4kit/internal/model"
)

func fixturePath(name string) string {
	return filepath.Join("..", "..", "testdata", "fixtures", "bigbank", name)
}

func loadBigBank(t *testing.T, name string) *Workspace {
	t.Helper()
	ws, err := Load(context.Background(), fixturePath(name), Options{})
	if err != nil {
		t.Fatalf("Load(%s) error = %v", name, err)
	}
	return ws
}

func orders(t *testing.T, ws *Workspace, key string) []string {
	t.Helper()
	v, ok := ws.View(key)
	if !ok {
		t.Fatalf("View(%q) not found", key)
	}
	var out []string
	for _, s := range v.Steps() {
		out = append(out, s.Order())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoad_TOML(t *testing.T) {
	ws := loadBigBank(t, "workspace.toml")

	if ws.Name != "Big Bank plc" {
		t.Errorf("Name = %q, want %q", ws.Name, "Big Bank plc")
	}
	if got := len(ws.Model.ElementsOfKind(model.KindComponent)); got != 3 {
		t.Errorf("components = %d, want 3", got)
	}
	if got := len(ws.Model.Relationships()); got != 7 {
		t.Errorf("relationships = %d, want 7", got)
	}
	if got := len(ws.Views); got != 2 {
		t.Fatalf("views = %d, want 2", got)
	}

	if got, want := orders(t, ws, "landscape"), []string{"1", "2", "3"}; !equalStrings(got, want) {
		t.Errorf("landscape orders = %v, want %v", got, want)
	}
	if got, want := orders(t, ws, "signin"), []string{"1", "2", "3", "4", "3", "5", "6"}; !equalStrings(got, want) {
		t.Errorf("signin orders = %v, want %v", got, want)
	}

	signin, _ := ws.View("signin")
	if signin.Element() == nil || signin.Element().ID() != "api" {
		t.Errorf("signin scope = %v, want api", signin.Element())
	}
	steps := signin.Steps()
	if !steps[3].Response() || steps[3].Description() != "Returns user record" {
		t.Errorf("step 4 = response %t %q, want the database reply", steps[3].Response(), steps[3].Description())
	}
	if steps[4].Relationship().InteractionStyle() != model.Asynchronous {
		t.Errorf("e-mail step style = %s, want %s", steps[4].Relationship().InteractionStyle(), model.Asynchronous)
	}
}

func TestLoad_ElementDetails(t *testing.T) {
	ws := loadBigBank(t, "workspace.toml")

	api, ok := ws.Model.ElementByID("api")
	if !ok {
		t.Fatal("api not found")
	}
	if team, _ := api.Property("team"); team != "platform" {
		t.Errorf("api team = %q, want %q", team, "platform")
	}
	if api.CanonicalName() != "/Internet Banking System/API Application" {
		t.Errorf("CanonicalName() = %q", api.CanonicalName())
	}

	db, _ := ws.Model.ElementByID("db")
	if !db.Tags().Has("Database") {
		t.Errorf("db tags = %s, want Database", db.Tags())
	}

	node, _ := ws.Model.ElementByID("api01")
	if node.Parent() == nil || node.Parent().ID() != "dc" {
		t.Errorf("api01 parent = %v, want dc", node.Parent())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{
			name: "unknown extension",
			file: "workspace.json",
			code: errors.InvalidFormat,
		},
		{
			name:    "malformed toml",
			file:    "workspace.toml",
			content: "name = ",
			code:    errors.InvalidWorkspace,
		},
		{
			name:    "unknown key",
			file:    "workspace.toml",
			content: "nmae = \"typo\"\n",
			code:    errors.InvalidWorkspace,
		},
		{
			name:    "unsupported schema",
			file:    "workspace.toml",
			content: "schema = \"2.1.0\"\n",
			code:    errors.UnsupportedVersion,
		},
		{
			name:    "malformed hcl",
			file:    "workspace.hcl",
			content: "person \"a\" {",
			code:    errors.InvalidWorkspace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			if _, err := Load(context.Background(), path, Options{}); !errors.HasCode(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.toml"), Options{})
	if !errors.HasCode(err, errors.InvalidWorkspace) {
		t.Errorf("Load() error = %v, want %s", err, errors.InvalidWorkspace)
	}
}

func TestBuild_Errors(t *testing.T) {
	people := []ElementDeclaration{{ID: "user", Name: "User"}}
	systems := []ElementDeclaration{
		{ID: "a", Name: "A", Containers: []ElementDeclaration{{ID: "a1", Name: "A1"}}},
		{ID: "b", Name: "B"},
	}
	uses := []RelationshipDeclaration{{Source: "user", Destination: "a"}}

	tests := []struct {
		name string
		decl Declaration
		code errors.ErrorCode
	}{
		{
			name: "relationship to unknown element",
			decl: Declaration{People: people, Relationships: []RelationshipDeclaration{{Source: "user", Destination: "ghost"}}},
			code: errors.ElementNotFound,
		},
		{
			name: "unknown interaction",
			decl: Declaration{People: people, Systems: systems, Relationships: []RelationshipDeclaration{{Source: "user", Destination: "a", Interaction: "eventually"}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "person with containers",
			decl: Declaration{People: []ElementDeclaration{{ID: "p", Name: "P", Containers: []ElementDeclaration{{Name: "C"}}}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "system with components",
			decl: Declaration{Systems: []ElementDeclaration{{ID: "s", Name: "S", Components: []ElementDeclaration{{Name: "C"}}}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "duplicate id",
			decl: Declaration{People: people, Systems: []ElementDeclaration{{ID: "user", Name: "Other"}}},
			code: errors.DuplicateElement,
		},
		{
			name: "duplicate view key",
			decl: Declaration{Views: []ViewDeclaration{{Key: "v"}, {Key: "v"}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "view without key",
			decl: Declaration{Views: []ViewDeclaration{{}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "person scope",
			decl: Declaration{People: people, Views: []ViewDeclaration{{Key: "v", Scope: "user"}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "missing step",
			decl: Declaration{People: people, Systems: systems, Relationships: uses,
				Views: []ViewDeclaration{{Key: "v", Sequence: []SequenceDeclaration{
					{StepDeclaration: StepDeclaration{Source: "a", Destination: "b"}},
				}}}},
			code: errors.NoSuchRelationship,
		},
		{
			name: "scope violation",
			decl: Declaration{People: people, Systems: systems, Relationships: uses,
				Views: []ViewDeclaration{{Key: "v", Sequence: []SequenceDeclaration{
					{StepDeclaration: StepDeclaration{Source: "user", Destination: "a1"}},
				}}}},
			code: errors.ScopeViolation,
		},
		{
			name: "parallel entry with source",
			decl: Declaration{People: people, Systems: systems, Relationships: uses,
				Views: []ViewDeclaration{{Key: "v", Sequence: []SequenceDeclaration{
					{StepDeclaration: StepDeclaration{Source: "user", Destination: "a"}, Parallel: true},
				}}}},
			code: errors.InvalidWorkspace,
		},
		{
			name: "step without destination",
			decl: Declaration{People: people, Views: []ViewDeclaration{{Key: "v", Sequence: []SequenceDeclaration{
				{StepDeclaration: StepDeclaration{Source: "user"}},
			}}}},
			code: errors.InvalidWorkspace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(context.Background(), &tt.decl, Options{}); !errors.HasCode(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuild_StepErrorNamesViewAndStep(t *testing.T) {
	decl := &Declaration{
		People:  []ElementDeclaration{{ID: "user", Name: "User"}},
		Systems: []ElementDeclaration{{ID: "a", Name: "A"}},
		Relationships: []RelationshipDeclaration{
			{Source: "user", Destination: "a", Technology: "HTTPS"},
		},
		Views: []ViewDeclaration{{Key: "checkout", Sequence: []SequenceDeclaration{
			{StepDeclaration: StepDeclaration{Source: "user", Destination: "a"}},
			{Parallel: true, Steps: []StepDeclaration{
				{Source: "user", Destination: "a", Technology: "FTP"},
			}},
		}}},
	}

	_, err := Build(context.Background(), decl, Options{})
	if !errors.HasCode(err, errors.TechnologyMismatch) {
		t.Fatalf("Build() error = %v, want %s", err, errors.TechnologyMismatch)
	}
	var e *errors.Error
	if ce, ok := err.(*errors.Error); ok {
		e = ce
	}
	if e == nil || e.Message != "view checkout step 2" {
		t.Errorf("outer message = %v, want %q", err, "view checkout step 2")
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decl := &Declaration{Views: []ViewDeclaration{{Key: "v"}}}
	if _, err := Build(ctx, decl, Options{}); err != context.Canceled {
		t.Errorf("Build() error = %v, want %v", err, context.Canceled)
	}
}

func TestBuild_SchemaRange(t *testing.T) {
	decl := &Declaration{Schema: "1.4.0"}

	if _, err := Build(context.Background(), decl, Options{SupportedSchema: "~1.3"}); !errors.HasCode(err, errors.UnsupportedVersion) {
		t.Errorf("Build() error = %v, want %s", err, errors.UnsupportedVersion)
	}
	ws, err := Build(context.Background(), decl, Options{SupportedSchema: ">= 1.2, < 2"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ws.Schema != "1.4.0" {
		t.Errorf("Schema = %q, want %q", ws.Schema, "1.4.0")
	}
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		code       errors.ErrorCode
	}{
		{"", "", ""},
		{"1.0.0", "^1.0.0", ""},
		{"1.9.3", "", ""},
		{"0.9.0", "", errors.UnsupportedVersion},
		{"2.0.0", "^1.0.0", errors.UnsupportedVersion},
		{"one", "", errors.InvalidWorkspace},
		{"1.0.0", "not a range", errors.ConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.version+" "+tt.constraint, func(t *testing.T) {
			err := CheckSchema(tt.version, tt.constraint)
			if tt.code == "" {
				if err != nil {
					t.Errorf("CheckSchema() error = %v, want nil", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("CheckSchema() error = %v, want %s", err, tt.code)
			}
		})
	}
}
