package version_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	mock_version "github.com/robgonnella/wisp/internal/mock/scripts/bump-version/version"
	"github.com/robgonnella/wisp/internal/scripts/bump-version/version"
	"github.com/stretchr/testify/assert"
)

func TestBump(t *testing.T) {
	data := version.BumpData{
		Version:      "v1.2.3",
		OutFile:      "internal/app-info/info.go",
		TemplatePath: "internal/templates/info.go.tmpl",
	}

	t.Run("generates commits and tags", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		gomock.InOrder(
			generator.EXPECT().Generate(version.VersionData{VERSION: "v1.2.3"}).Return(nil),
			vc.EXPECT().Add(data.OutFile).Return(nil),
			vc.EXPECT().Commit("Bump version v1.2.3").Return(nil),
			vc.EXPECT().Tag("v1.2.3").Return(nil),
		)

		err := version.Bump(data, generator, vc)

		assert.NoError(st, err)
	})

	t.Run("rejects malformed version", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		bad := data
		bad.Version = "1.2"

		err := version.Bump(bad, generator, vc)

		assert.Error(st, err)
	})

	t.Run("stops when generation fails", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		generator := mock_version.NewMockVersionGenerator(ctrl)
		vc := mock_version.NewMockVersionControl(ctrl)

		generator.EXPECT().Generate(gomock.Any()).Return(errors.New("mock error"))

		err := version.Bump(data, generator, vc)

		assert.Error(st, err)
	})
}

func TestTemplateGenerator(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "info.go.tmpl")
	outFile := filepath.Join(dir, "out", "info.go")

	err := os.WriteFile(templatePath, []byte(`const VERSION = "{{ .VERSION }}"`), 0644)

	assert.NoError(t, err)

	generator := version.NewTemplateGenerator(outFile, templatePath)

	err = generator.Generate(version.VersionData{VERSION: "v0.2.0"})

	assert.NoError(t, err)

	content, err := os.ReadFile(outFile)

	assert.NoError(t, err)
	assert.Equal(t, `const VERSION = "v0.2.0"`, string(content))
}
