package linkverify

import (
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
)

// BrokenLink is a relative link whose target does not exist.
type BrokenLink struct {
	Page string // Page path relative to the checked directory
	URL  string
	Text string
}

// Report summarizes one directory check.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// VerifyDir checks every relative link in every .html file under dir.
// Pages are visited in lexical order.
func VerifyDir(dir string) (*Report, error) {
	report := &Report{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		report.Pages++
		return verifyPage(dir, path, report)
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output directory").WithContext("dir", dir).Build()
	}
	return report, nil
}

func verifyPage(dir, page string, report *Report) error {
	links, err := ExtractLinks(page)
	if err != nil {
		return err
	}
	rel, _ := filepath.Rel(dir, page)
	for _, link := range links {
		if !ShouldVerifyLink(link) {
			continue
		}
		report.Links++
		if !targetExists(filepath.Dir(page), link.URL) {
			report.Broken = append(report.Broken, BrokenLink{Page: filepath.ToSlash(rel), URL: link.URL, Text: link.Text})
		}
	}
	return nil
}

func targetExists(pageDir, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Path == "" {
		// query or fragment on the page itself
		return true
	}
	p := u.Path
	if strings.HasPrefix(p, "/") {
		return false
	}
	target := filepath.Join(pageDir, filepath.FromSlash(p))
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	return true
}
