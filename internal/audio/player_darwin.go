package audio

import "os/exec"

func lookupCommand() (string, []string, error) {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return "", nil, ErrToneUnsupported
	}
	return path, nil, nil
}
