package commands

const (
	_etc = "/usr/local/etc/com.github.weeklock"

	DEFAULT_CONFIG = _etc + "/weeklock.yaml"
)
