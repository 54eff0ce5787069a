package version

import (
	goversion "github.com/caarlos0/go-version"
)

const (
	Application = "group-sync-service"
	Description = "Converges Outline groups and memberships to Pocket ID"
)

// Заполняются через -ldflags при сборке.
var (
	Version   = "dev"
	Commit    = ""
	TreeState = ""
	Date      = ""
	BuiltBy   = ""
	// WebSite адрес репозитория сервиса, пусто если не задан при сборке.
	WebSite = ""
)

// Info возвращает сведения о сборке.
func Info() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(Application, Description, WebSite),
		func(i *goversion.Info) {
			if Commit != "" {
				i.GitCommit = Commit
			}
			if Version != "" {
				i.GitVersion = Version
			}
			if TreeState != "" {
				i.GitTreeState = TreeState
			}
			if Date != "" {
				i.BuildDate = Date
			}
			if BuiltBy != "" {
				i.BuiltBy = BuiltBy
			}
		},
	)
}
