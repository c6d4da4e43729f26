package defs

import "io/fs"

// File names inside a generated Django project.
const (
	ManagePy        = "manage.py"
	SettingsPy      = "settings.py"
	UrlsPy          = "urls.py"
	ViewsPy         = "views.py"
	RequirementsTxt = "requirements.txt"
	GitignoreFile   = ".gitignore"
)

// Directory names inside a generated Django project.
const (
	VenvDir      = ".venv"
	TemplatesDir = "templates"
	StaticDir    = "static"
	CSSSubdir    = "css"
)

// Template and asset file names.
const (
	BaseHTML     = "base.html"
	HomeHTML     = "home.html"
	AppIndexHTML = "app_index.html"
	IndexHTML    = "index.html"
	StyleCSS     = "style.css"
)

// BackupSuffix is appended to a file name when a backup copy is made
// before an owned file is overwritten. Backups are never cleaned up.
const BackupSuffix = ".bak"

// Permissions for generated directories and files.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)

// Command-line defaults.
const (
	DefaultDestination = "./my_django_project"
	DefaultProjectName = "mysite"
)

// Files under ~/.djboot/.
const (
	HomeDirName    = ".djboot"
	LogFileName    = "djboot.log"
	ConfigFileName = "config.yaml"
)
