/*
Package config loads versioned configuration files into typed objects.

	            +-------------+
	            |   Manager   |
	            |  (LoadAll)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+-----+ +----+-----+
	|   Node   | |  Migrate  | |  Codec   |
	|  (Parse) | | (Upgrade) | | (Decode) |
	+----------+ +-----------+ +----------+

🎯 Purpose:
- Turns one file per registered Descriptor into one typed object
- Upgrades old files in place, keeping an old_<file> backup
- Falls back to built-in defaults per file instead of failing the batch

🔄 Flow (per descriptor, in registration order):
1. Copy the bundled template into place when the file is missing
2. Parse the file into a node tree
3. Check the version and run the migration chain
4. Decode the tree with the codec registry
5. On any failure, build the defaults; a failing default factory aborts the batch
6. Store the object under its type for Get

⚡ Error containment:
Parse errors, version problems, failed migrations and decode errors are
logged with the file name and a remediation hint, then replaced by
defaults. Only ErrDefaultConstruction makes LoadAll return false.

🔍 Example:

	m := config.NewManager(dir, config.WithLogger(logger), config.WithRegistry(reg))
	if err := m.Register(forms.FormsDescriptor); err != nil {
		return err
	}
	if !m.LoadAll(ctx) {
		return errors.New("configuration unusable")
	}
	cfg, ok := config.Get[forms.FormConfig](m)
*/
package config
