/*
Package config loads the settings that steer a jvmbump run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Every field has a default, so running without a config file behaves exactly
  like the fixed tool: Java 17, build.gradle and gradle.properties, node_modules
  skipped.
- A config file can point at another root, pick another version, or add
  doublestar ignore patterns.

🔄 Flow:
1. Pick a parser from the file extension
2. Decode, rejecting unknown fields
3. Resolve a relative root against the config file's directory
4. Fill defaults and validate

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, afero.NewOsFs(), config.DefaultFile)
	if err != nil {
		return err
	}
*/
package config
