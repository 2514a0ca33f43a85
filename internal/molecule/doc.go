// Package molecule reads molecular structure files into atoms and bonds.
//
// Supported formats are selected by file extension:
//
//   - PDB (.pdb, .ent): ATOM/HETATM and CONECT records
//   - MDL molfile / SDF (.mol, .sdf): V2000 atom and bond blocks
//   - XYZ (.xyz): element symbol followed by cartesian coordinates
//
// Formats without explicit connectivity get bonds inferred from covalent
// radii, see [InferBonds].
//
// # Example
//
//	st, err := molecule.ReadFile("1crn.pdb", molecule.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	fmt.Println(st.NumAtoms(), st.NumBonds())
package molecule
