package config

import "time"

// Base application details
const AppName = "lex"
const Version = "0.1.0"
const ConfigDirName = ".config/lex" // Relative to the home directory
const SyntaxDirName = "syntax"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "lex.log"

// Editor-native configuration files (highlighted by the built-in config rule)
const RCFileName = ".lexrc"
const ConfigFileExt = ".lexconfig"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
