package export

import (
	"regexp"
	"strings"
)

var filenameUnsafe = regexp.MustCompile(`[^a-z0-9-]+`)

// Filename builds the download filename for an exported report:
// {domain}-verification-{business-name-with-spaces-as-dashes}.{ext}
func Filename(domain, businessName, ext string) string {
	name := strings.ToLower(strings.TrimSpace(businessName))
	name = strings.ReplaceAll(name, " ", "-")
	name = filenameUnsafe.ReplaceAllString(name, "")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "report"
	}
	return domain + "-verification-" + name + "." + ext
}
