package flushio

// WriteFlushers combines writers into one WriteFlusher that writes and
// flushes each in turn; degenerate combinations collapse.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all writeFlushers
	for _, wf := range wfs {
		if many, is := wf.(writeFlushers); is {
			all = append(all, many...)
		} else if wf != nil {
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return discardWriteFlusher
	case 1:
		return all[0]
	}
	return all
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			break
		}
	}
	return n, err
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
