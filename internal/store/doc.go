// Package store persists repofinder's preferences.
//
// The only preference is the last confirmed username. It is kept in a BoltDB
// file so it survives restarts:
//
//	prefs, err := store.NewBolt(cfg.DatabasePath())
//	if err != nil {
//	    return err
//	}
//	defer prefs.Close()
//
//	name, err := prefs.Username()
//
// Values are stored as raw strings in the "preferences" bucket. An unset key
// reads back as "".
package store
