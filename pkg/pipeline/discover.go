package pipeline

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Discover walks root and returns the absolute paths of the regular files
// whose base name matches pattern, in lexical walk order.
func Discover(root string, pattern *regexp.Regexp) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve input root")
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && pattern.MatchString(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return files, nil
}

// OutputPath maps an input file below inputRoot to its CSV counterpart below
// outputRoot, keeping the relative directory layout.
func OutputPath(inputRoot, outputRoot, path string) (string, error) {
	inputRoot, err := filepath.Abs(inputRoot)
	if err != nil {
		return "", errors.Wrap(err, "resolve input root")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolve input file")
	}
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", errors.Wrapf(err, "relative path of %s", path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%s is outside %s", path, inputRoot)
	}
	return filepath.Join(outputRoot, strings.TrimSuffix(rel, filepath.Ext(rel))+".csv"), nil
}
