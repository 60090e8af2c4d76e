package audio

import "os/exec"

func lookupCommand() (string, []string, error) {
	if path, err := exec.LookPath("paplay"); err == nil {
		return path, nil, nil
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		return path, []string{"-q"}, nil
	}
	return "", nil, ErrToneUnsupported
}
