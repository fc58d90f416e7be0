// Package hclcfg is the HCL front-end: it parses task documents into the
// format-agnostic declaration model consumed by the registry builder.
//
// A document contains three kinds of top-level blocks:
//
//	vars {
//	  oc20_energy_coef = 2.0
//	  element_refs = { omc_elem_refs = [1.25, -0.7] }
//	}
//
//	dataset "oc20" {
//	  elements = [1, 8, 78]
//	}
//
//	task "oc20_energy" {
//	  level    = "system"
//	  property = "energy"
//	  loss {
//	    wrapper     = "ddp_loss"
//	    fn          = "mae"
//	    coefficient = oc20_energy_coef
//	  }
//	  out {
//	    dim   = [1]
//	    dtype = "float32"
//	  }
//	  datasets = ["oc20"]
//	  metrics  = ["mae"]
//	}
//
// Attribute values that are plain traversals (oc20_energy_coef,
// element_refs.omc_elem_refs) are kept as unresolved references; everything
// else must be a literal. Resolution happens later, in the registry build,
// so that a reference with no binding fails with the proper taxonomy error
// instead of a generic evaluation diagnostic.
package hclcfg
