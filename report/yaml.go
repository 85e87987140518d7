package report

import (
	"os"

	"gopkg.in/yaml.v3"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return regressErrors.Wrap(err, "report.WriteYAML")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return regressErrors.Wrap(err, "report.WriteYAML")
	}
	log.GetLoggerWithName("report").Info("Report written",
		log.OperationKey, log.OperationRender,
		log.PathKey, path,
	)
	return nil
}

// WriteText writes the rendered text report.
func (r *Report) WriteText(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o600); err != nil {
		return regressErrors.Wrap(err, "report.WriteText")
	}
	log.GetLoggerWithName("report").Info("Report written",
		log.OperationKey, log.OperationRender,
		log.PathKey, path,
	)
	return nil
}
