// Package hydra is the YAML front-end: it parses Hydra-style task documents
// into the format-agnostic declaration model consumed by the registry
// builder.
//
// This is the interchange format of the upstream research configs: every
// constructed object is a nested mapping with a "_target_" discriminator
// naming its constructor, and string values of the form ${identifier} or
// ${identifier.subfield} are placeholders resolved against the variable
// context. Target names may be fully qualified ("some.module.DDPLoss");
// only the final segment is significant.
//
//	tasks:
//	  - name: oc20_energy
//	    level: system
//	    property: energy
//	    loss_fn:
//	      _target_: DDPLoss
//	      loss_fn:
//	        _target_: MAELoss
//	      coefficient: ${oc20_energy_coef}
//	    out_spec:
//	      dim: [1]
//	      dtype: float32
//	    datasets: [oc20]
//	    metrics: [mae]
//	datasets:
//	  - name: oc20
//	    elements: [1, 8, 78]
//
// Like the HCL front-end, this package leaves placeholders unresolved; the
// registry build resolves them so a missing binding fails with the proper
// taxonomy error.
package hydra
